package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/hupe1980/waygraph"
	"github.com/hupe1980/waygraph/codec"
	"github.com/hupe1980/waygraph/geom"
	"github.com/hupe1980/waygraph/graph"
	"github.com/hupe1980/waygraph/internal/ui"
	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats GRAPH",
		Short: "Show node, edge and flag counts of an encoded graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			snap, err := codec.Decode(data)
			if err != nil {
				return err
			}
			fp, err := codec.FingerprintOf(snap)
			if err != nil {
				return err
			}

			flags := map[graph.NodeFlag]int{}
			for _, n := range snap.Nodes() {
				flags[n.Flag]++
			}
			dirs := map[graph.Direction]int{}
			for _, e := range snap.Edges() {
				dirs[e.Direction]++
			}
			groups, removable := snap.CountDuplicates(cfg.Editor.DedupEpsilon)

			w := cmd.OutOrStdout()
			ui.Banner(w, "graph statistics")
			ui.KeyValue(w, "Size", fmt.Sprintf("%d bytes", len(data)))
			ui.KeyValue(w, "Fingerprint", fp)
			ui.KeyValue(w, "Nodes", snap.NodeCount())
			ui.KeyValue(w, "Edges", snap.EdgeCount())
			ui.KeyValue(w, "Markers", len(snap.Markers()))
			ui.KeyValue(w, "Next id", snap.NextNodeID())
			fmt.Fprintln(w)

			rows := [][]string{}
			for _, f := range []graph.NodeFlag{graph.FlagRegular, graph.FlagSubPriority, graph.FlagWarning, graph.FlagReserved} {
				rows = append(rows, []string{"flag", f.String(), strconv.Itoa(flags[f])})
			}
			for _, d := range []graph.Direction{graph.DirectionRegular, graph.DirectionDual, graph.DirectionReverse} {
				rows = append(rows, []string{"direction", d.String(), strconv.Itoa(dirs[d])})
			}
			ui.Table(w, []string{"KIND", "VALUE", "COUNT"}, rows)
			fmt.Fprintln(w)

			if removable > 0 {
				ui.Warn.Fprintf(w, "  %d duplicate groups, %d removable nodes (run `waygraph dedup`)\n", groups, removable)
			} else {
				ui.Good.Fprintln(w, "  No duplicate nodes")
			}
			return nil
		},
	}
}

func dedupCmd() *cobra.Command {
	var (
		output  string
		epsilon float64
	)

	cmd := &cobra.Command{
		Use:   "dedup GRAPH",
		Short: "Merge nodes that lie within epsilon of each other",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if epsilon > 0 {
				cfg.Editor.DedupEpsilon = epsilon
			}
			snap, err := readSnapshot(args[0])
			if err != nil {
				return err
			}
			ed, err := waygraph.Open(snap, editorOptions(cfg)...)
			if err != nil {
				return err
			}
			res, err := ed.Deduplicate()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			ui.Banner(w, "dedup")
			ui.KeyValue(w, "Groups", res.DuplicateGroups)
			ui.KeyValue(w, "Removed nodes", res.RemovedNodes)
			ui.KeyValue(w, "Remapped edges", res.RemappedEdges)
			ui.KeyValue(w, "Dropped loops", res.RemovedSelfEdges)
			ui.KeyValue(w, "Remapped markers", res.RemappedMarkers)

			if !res.Changed() {
				ui.Good.Fprintln(w, "\n  Nothing to merge")
				return nil
			}
			if output == "" {
				output = args[0]
			}
			if err := writeSnapshot(output, ed.Snapshot(), "zstd"); err != nil {
				return err
			}
			ui.Good.Fprintf(w, "\n  Wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the result here instead of in place")
	cmd.Flags().Float64Var(&epsilon, "epsilon", 0, "Merge distance (default from config)")
	return cmd
}

func nearestCmd() *cobra.Command {
	var (
		k      int
		radius float64
		box    float64
	)

	cmd := &cobra.Command{
		Use:   "nearest GRAPH X Y",
		Short: "List the nodes closest to a position",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := readSnapshot(args[0])
			if err != nil {
				return err
			}
			x, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("x: %w", err)
			}
			y, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("y: %w", err)
			}
			q := geom.V(x, y)

			var matches []graph.NodeMatch
			switch {
			case box > 0:
				half := geom.V(box, box)
				for _, id := range snap.WithinRect(q.Sub(half), q.Add(half)) {
					n, _ := snap.Node(id)
					matches = append(matches, graph.NodeMatch{ID: id, Distance: n.Position.Distance(q)})
				}
			case radius > 0:
				matches = snap.WithinRadius(q, radius)
			default:
				matches = snap.NearestK(q, k)
			}

			w := cmd.OutOrStdout()
			if len(matches) == 0 {
				ui.Warn.Fprintln(w, "  No nodes found")
				return nil
			}
			rows := make([][]string, 0, len(matches))
			for _, m := range matches {
				n, _ := snap.Node(m.ID)
				rows = append(rows, []string{
					strconv.FormatUint(uint64(m.ID), 10),
					fmt.Sprintf("%.3f", n.Position.X),
					fmt.Sprintf("%.3f", n.Position.Y),
					fmt.Sprintf("%.3f", m.Distance),
					n.Flag.String(),
				})
			}
			ui.Table(w, []string{"ID", "X", "Y", "DIST", "FLAG"}, rows)
			return nil
		},
	}

	cmd.Flags().IntVarP(&k, "count", "k", 1, "Number of neighbors")
	cmd.Flags().Float64VarP(&radius, "radius", "r", 0, "List every node within this radius instead")
	cmd.Flags().Float64Var(&box, "box", 0, "List every node inside the square of this half-size instead")
	return cmd
}

func dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump GRAPH",
		Short: "Print the document of an encoded graph as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			doc, err := codec.DecodeDocument(data)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		},
	}
}
