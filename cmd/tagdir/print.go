package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/kk-code-lab/tagdir/internal/tags"
)

type tagFetcher interface {
	FetchTags(ctx context.Context) ([]tags.TagRecord, error)
}

// printTagTree writes the forest indented by depth to out and integrity
// findings to errOut.
func printTagTree(ctx context.Context, out, errOut io.Writer, src tagFetcher) error {
	records, err := src.FetchTags(ctx)
	if err != nil {
		return fmt.Errorf("fetch tags: %w", err)
	}
	forest := tags.BuildForest(records)
	forest.Walk(func(node tags.TagNode, depth int) {
		fmt.Fprintf(out, "%s%s\n", strings.Repeat("  ", depth), node.Name)
	})
	for _, issue := range forest.Validate() {
		fmt.Fprintf(errOut, "warning: %s\n", issue)
	}
	return nil
}
