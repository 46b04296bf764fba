package nacosManager

import (
	"fmt"

	"github.com/nacos-group/nacos-sdk-go/clients"
	"github.com/nacos-group/nacos-sdk-go/clients/config_client"
	"github.com/nacos-group/nacos-sdk-go/common/constant"
	"github.com/nacos-group/nacos-sdk-go/vo"
)

// NacosConfig holds the connection settings for a Nacos server.
type NacosConfig struct {
	IpAddr      string
	Port        uint64
	NamespaceId string
	Group       string
	DataId      string
	LogDir      string
	CacheDir    string
	Username    string
	Password    string
}

// NacosClient reads remote configuration documents.
type NacosClient interface {
	GetConfig(dataId, group string) (string, error)
}

type nacosClientImpl struct {
	configClient config_client.IConfigClient
}

func (n *nacosClientImpl) GetConfig(dataId, group string) (string, error) {
	return n.configClient.GetConfig(vo.ConfigParam{
		DataId: dataId,
		Group:  group,
	})
}

// NewNacosClient connects a config client to the server described by config.
func NewNacosClient(config *NacosConfig) (NacosClient, error) {
	if config.LogDir == "" {
		config.LogDir = "/tmp/nacos/log"
	}
	if config.CacheDir == "" {
		config.CacheDir = "/tmp/nacos/cache"
	}

	serverConfigs := []constant.ServerConfig{
		{
			IpAddr: config.IpAddr,
			Port:   config.Port,
		},
	}

	clientConfig := constant.ClientConfig{
		NamespaceId:         config.NamespaceId,
		TimeoutMs:           5000,
		NotLoadCacheAtStart: true,
		LogDir:              config.LogDir,
		CacheDir:            config.CacheDir,
		LogLevel:            "error",
		Username:            config.Username,
		Password:            config.Password,
	}

	configClient, err := clients.NewConfigClient(
		vo.NacosClientParam{
			ClientConfig:  &clientConfig,
			ServerConfigs: serverConfigs,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("create config client error: %w", err)
	}

	return &nacosClientImpl{configClient: configClient}, nil
}
