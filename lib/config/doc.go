// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the bureau-digest configuration file.
//
// The file is located by the --config flag or the BUREAU_DIGEST_CONFIG
// environment variable, in that order. There is no ~/.config discovery
// and no search path: without either, [Resolve] returns [Default].
//
// Files are YAML. Files ending in .json or .jsonc are accepted too;
// comments and trailing commas are stripped with tidwall/jsonc before
// decoding.
//
// Byte sizes such as checkpoint.interval accept human units ("64MiB",
// "1 GB") via go-humanize as well as plain integers.
//
// After loading, ${HOME} and ${VAR:-default} patterns are expanded in
// the identity file paths. No other environment variables override
// config values.
package config
