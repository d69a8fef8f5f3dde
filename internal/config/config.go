// Package config provides the persisted merge configurations (the ordered
// list of required base filenames per root directory), YAML loading, and
// default CLI settings for pdfmerge.
package config

// File is the on-disk layout of the configuration store. Keys are
// normalized absolute root-directory paths.
type File struct {
	Configurations map[string][]string `yaml:"configurations"`
}

// MergeConfiguration is the ordered list of required base filenames for
// one root directory.
type MergeConfiguration struct {
	Root  string   `json:"root" yaml:"root"`
	Order []string `json:"order" yaml:"order"`
}
