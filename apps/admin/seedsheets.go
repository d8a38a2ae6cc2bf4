package main

import (
	"context"
	"strings"
)

// seedSheets creates any missing sheets with their header rows. Classes get
// one assessment sheet each.
func (cli *commandLine) seedSheets(classesCSV string) error {
	var classes []string
	for _, c := range strings.Split(classesCSV, ",") {
		if c = strings.TrimSpace(c); c != "" {
			classes = append(classes, c)
		}
	}
	return cli.db.Bootstrap(context.Background(), classes...)
}
