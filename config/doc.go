// Package config loads knnq settings from a YAML file and KNNQ_ environment
// variables using viper.
package config
