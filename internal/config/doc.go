// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads the optional quell configuration.
//
// A project may add a .quell.yaml (or .quell.yml, or .quell.hcl) file to extend
// or replace the built-in noise patterns:
//
//	patterns:
//	  - '^ok\s+\S+\s+\(cached\)$'
//	  - 'coverage: \d+\.\d+% of statements'
//	disable_defaults: false
//	filter_stderr: true
//
// HCL files may reference environment variables through env.NAME.
// Configs can also be fetched with any go-getter URL.
package config
