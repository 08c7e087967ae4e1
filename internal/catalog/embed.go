package catalog

import "embed"

//go:embed data
var embedded embed.FS
