package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/smartshop/webapp/internal/server"
	"github.com/smartshop/webapp/pkg/session"
)

// smartshop serve starts the console and runs until interrupted.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web console",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// smartshop route:list prints the route table.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := server.BuildRouter(session.NewMemoryStore(time.Minute))
		if err != nil {
			return err
		}

		infos := r.Routes()
		if len(infos) == 0 {
			fmt.Println("No named routes registered.")
			return nil
		}

		sort.Slice(infos, func(i, j int) bool {
			if infos[i].Path != infos[j].Path {
				return infos[i].Path < infos[j].Path
			}
			return infos[i].Method < infos[j].Method
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the console version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("smartshop", version)
	},
}
