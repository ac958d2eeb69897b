package providers

import (
	_ "github.com/veritylab/dfscan/src/detector/realitydefender"
)
