package main

import "embed"

// Default configuration and textures ship inside the binary.
//
//go:embed configs assets
var embedded embed.FS
