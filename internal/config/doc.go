// SPDX-License-Identifier: MPL-2.0

// Package config loads and persists the jarpack configuration file. User
// config is written in CUE, validated against an embedded schema, and
// merged over built-in defaults via Viper.
package config
