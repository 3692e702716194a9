package main

import (
	"fmt"
	"strconv"

	"github.com/hupe1980/waygraph/internal/ui"
	"github.com/spf13/cobra"
)

func drawCmd() *cobra.Command {
	var (
		output      string
		compression string
	)

	cmd := &cobra.Command{
		Use:   "draw SCENE",
		Short: "Draw the strokes of a scene file into a graph",
		Long: `Draw applies the strokes and markers of a TOML scene file.

Scene file:
  name = "yard"
  input = "base.wgs"     # optional graph to start from
  output = "yard.wgs"
  dedup = true

  [[stroke]]
  tool = "line"
  from = [0, 0]
  to = [12, 0]

  [[stroke]]
  tool = "quadratic"
  chain = true           # continue from the previous stroke
  control = [18, 0]
  to = [18, 6]
  priority = "subpriority"

  [[marker]]
  at = [0, 0]
  name = "gate"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			scene, err := loadScene(args[0])
			if err != nil {
				return err
			}
			if output != "" {
				scene.Output = output
			}

			ed, err := scene.openEditor(editorOptions(cfg)...)
			if err != nil {
				return err
			}
			results, dedup, err := scene.Run(ed)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			title := "draw"
			if scene.Name != "" {
				title = scene.Name
			}
			ui.Banner(w, title)

			rows := make([][]string, 0, len(results))
			for i, r := range results {
				first, last := "-", "-"
				if n := len(r.Nodes); n > 0 {
					first = strconv.FormatUint(uint64(r.Nodes[0]), 10)
					last = strconv.FormatUint(uint64(r.Nodes[n-1]), 10)
				}
				rows = append(rows, []string{strconv.Itoa(i + 1), r.Tool, strconv.Itoa(len(r.Nodes)), first, last})
			}
			ui.Table(w, []string{"#", "TOOL", "NEW", "FIRST", "LAST"}, rows)
			fmt.Fprintln(w)

			if dedup != nil {
				ui.KeyValue(w, "Merged nodes", dedup.RemovedNodes)
			}
			st := ed.Stats()
			ui.KeyValue(w, "Nodes", st.Nodes)
			ui.KeyValue(w, "Edges", st.Edges)
			ui.KeyValue(w, "Markers", st.Markers)

			if scene.Output == "" {
				return nil
			}
			if compression == "" {
				compression = "zstd"
			}
			if err := writeSnapshot(scene.Output, ed.Snapshot(), compression); err != nil {
				return err
			}
			ui.Good.Fprintf(w, "\n  Wrote %s\n", scene.Output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the graph here instead of the scene output")
	cmd.Flags().StringVar(&compression, "compression", "", "Blob compression: none, lz4, zstd (default zstd)")
	return cmd
}
