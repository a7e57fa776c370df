// Package config defines the YAML format of feature catalog files.
//
// A catalog file is a list of feature records:
//
//	- name: restaurant
//	  tags: amenity=restaurant
//	  categories: [food, eating place]
//	  named: true
//
//	- name: road
//	  plural: roads
//	  tags: [highway=*]
//	  types: way
package config

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v2"
)

type Feature struct {
	Name       string     `yaml:"name"`
	Tags       TagList    `yaml:"tags"`
	Types      StringList `yaml:"types"`
	Precision  *int       `yaml:"precision"`
	Plural     string     `yaml:"plural"`
	Categories StringList `yaml:"categories"`
	Named      bool       `yaml:"named"`
	UseName    bool       `yaml:"use_name"`
}

// StringList accepts a single string or a list of strings.
type StringList []string

func (l *StringList) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err == nil {
		*l = StringList{s}
		return nil
	}
	var list []string
	if err := unmarshal(&list); err != nil {
		return err
	}
	*l = list
	return nil
}

// TagList accepts a single "key=value" string, a list of them, or a
// mapping of keys to values.
type TagList []string

func (l *TagList) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var list StringList
	if err := unmarshal(&list); err == nil {
		*l = TagList(list)
		return nil
	}
	kv := yaml.MapSlice{}
	if err := unmarshal(&kv); err != nil {
		return err
	}
	tags := make([]string, 0, len(kv))
	for _, item := range kv {
		k, ok := item.Key.(string)
		if !ok {
			return fmt.Errorf("tag key '%v' not a string", item.Key)
		}
		switch v := item.Value.(type) {
		case string:
			tags = append(tags, k+"="+v)
		case nil:
			tags = append(tags, k)
		default:
			tags = append(tags, fmt.Sprintf("%s=%v", k, v))
		}
	}
	sort.Strings(tags)
	*l = tags
	return nil
}

// Parse parses all feature records of a catalog file.
func Parse(b []byte) ([]Feature, error) {
	var features []Feature
	if err := yaml.Unmarshal(b, &features); err != nil {
		return nil, err
	}
	return features, nil
}
