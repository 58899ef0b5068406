package main

import (
	"fmt"

	"github.com/scrapedown/scrapedown"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	if c.Delete != "" {
		if err := deps.Runs.DeleteRun(deps.Ctx, c.Delete); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", scrapedown.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Deleted run %s\n", c.Delete)
		return nil
	}

	if c.Pages != "" {
		pages, err := deps.Runs.FindPagesByRun(deps.Ctx, c.Pages)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", scrapedown.ErrorMessage(err))
			return err
		}
		if len(pages) == 0 {
			fmt.Fprintln(deps.Stdout, "No stored pages for this run.")
			return nil
		}
		for i, page := range pages {
			fmt.Fprintf(deps.Stdout, "%d. %s  %s\n", i+1, page.Title, scrapedown.TruncateURL(page.URL, 60))
		}
		return nil
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, scrapedown.RunFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrapedown.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded. Use 'scrapedown deep' to crawl something.")
		return nil
	}

	for _, run := range runs {
		seed := run.Seed
		if run.Location != "" {
			seed = seed + " in " + run.Location
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %-5s  %d/%d ok  %s\n",
			run.ID, run.CreatedAt.Format("2006-01-02 15:04"), run.Kind,
			run.Succeeded, run.Attempted, seed)
	}

	return nil
}
