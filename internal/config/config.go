package config

import (
	"encoding/json"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

var (
	singleLineComment  = regexp.MustCompile(`(?m)^\s*//.*$`)
	multiLineComment   = regexp.MustCompile(`/\*[\s\S]*?\*/`)
	trailingCommaObj   = regexp.MustCompile(`,\s*}`)
	trailingCommaArray = regexp.MustCompile(`,\s*\]`)
)

// parseRemote decodes a Nacos document. JSON with comments and trailing
// commas is accepted; anything that is not JSON is tried as YAML.
func parseRemote(content string) (*NacosAppConfig, error) {
	var appConfig NacosAppConfig

	clean := removeJSONComments(content)
	jsonErr := json.Unmarshal([]byte(clean), &appConfig)
	if jsonErr == nil {
		return &appConfig, nil
	}

	appConfig = NacosAppConfig{}
	if yamlErr := yaml.Unmarshal([]byte(content), &appConfig); yamlErr != nil {
		return nil, fmt.Errorf("parse nacos config (json: %v, yaml: %v)", jsonErr, yamlErr)
	}
	return &appConfig, nil
}

// removeJSONComments strips line comments, block comments and trailing
// commas. Line comments are only removed when they start the line so that
// URLs inside values survive.
func removeJSONComments(jsonStr string) string {
	out := singleLineComment.ReplaceAllString(jsonStr, "")
	out = multiLineComment.ReplaceAllString(out, "")
	out = trailingCommaObj.ReplaceAllString(out, "}")
	return trailingCommaArray.ReplaceAllString(out, "]")
}
