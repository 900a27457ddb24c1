package pipeline

import (
	"context"

	"github.com/matzehuels/bifconv/pkg/bif"
	"github.com/matzehuels/bifconv/pkg/network"
)

// Load reads the network named by opts from disk or from opts.Source.
func Load(ctx context.Context, opts Options) (*network.Network, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Path != "" {
		return bif.Load(opts.Path)
	}
	return bif.ReadBytes(opts.Source)
}
