package main

import (
	"fmt"
	"strings"
)

// LookupCmd handles XML web API lookups.
type LookupCmd struct {
	ISBN string `arg:"" help:"ISBN-10 or ISBN-13 to look up"`
}

func (c *LookupCmd) Run(deps *Dependencies) error {
	pubs, err := deps.Lookup.LookupISBN(deps.Ctx, c.ISBN)
	if err != nil {
		return err
	}

	if len(pubs) == 0 {
		fmt.Fprintln(deps.Stdout, "no publications found")
		return nil
	}
	for _, pub := range pubs {
		fmt.Fprintf(deps.Stdout, "%s  %s by %s (%s, %s) %s\n",
			pub.ID, pub.Title, strings.Join(pub.Authors, ", "),
			pub.Publisher, pub.Year, pub.Type)
	}
	return nil
}
