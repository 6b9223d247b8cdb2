/*
 * list.go, part of gosam.
 *
 * Copyright 2026 The gosam authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/samflow/gosam/workspace"
)

var listFilter []string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the jobs of the project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := parseFilter(listFilter)
		if err != nil {
			return err
		}
		p, err := workspace.OpenProject(global.dir)
		if err != nil {
			return err
		}
		jobs, err := p.Find(cmd.Context(), filter)
		if err != nil {
			return err
		}
		for _, j := range jobs {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", j.ID, j.StatePoint)
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export OUT.jsonl.zst",
	Short: "Export every state point to a zstd-compressed JSON lines file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := workspace.OpenProject(global.dir)
		if err != nil {
			return err
		}
		jobs, err := p.Jobs(cmd.Context())
		if err != nil {
			return err
		}
		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		if err := workspace.Export(f, jobs); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d jobs exported to %s\n", len(jobs), args[0])
		return nil
	},
}

func init() {
	listCmd.Flags().StringArrayVar(&listFilter, "filter", nil, "Only list jobs whose state point has key=value (repeatable)")
	rootCmd.AddCommand(listCmd, exportCmd)
}
