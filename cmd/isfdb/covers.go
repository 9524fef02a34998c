package main

import (
	"fmt"
)

// CoversCmd handles the cover lookup command.
type CoversCmd struct {
	identifierFlags
	Best bool `help:"Only print the best cover"`
}

func (c *CoversCmd) Run(deps *Dependencies) error {
	req := c.request(deps.Config, 0)

	sink := make(chan string, req.CoverBound())
	done := make(chan struct{})
	var covers []string
	go func() {
		defer close(done)
		for url := range sink {
			covers = append(covers, url)
		}
	}()

	err := deps.Engine.ResolveCovers(deps.Ctx, req, sink, c.Best)
	close(sink)
	<-done
	if err != nil {
		return err
	}

	if len(covers) == 0 {
		fmt.Fprintln(deps.Stdout, "no covers found")
		return nil
	}
	for _, url := range covers {
		fmt.Fprintln(deps.Stdout, url)
	}
	return nil
}
