/*
 * build.go, part of gosam.
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
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samflow/gosam/builder"
	"github.com/samflow/gosam/workspace"
)

var buildFlags struct {
	all        bool
	plot       bool
	forcefield string
}

var buildCmd = &cobra.Command{
	Use:   "build [JOBID...]",
	Short: "Build the MD input files of jobs",
	Long: `Build assembles the dual monolayer of each job and writes init.gro,
init.top, init.lammps and init.ndx in the job directory. A failed job
doesn't stop the others, but makes the command fail.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().BoolVar(&buildFlags.all, "all", false, "Build every job of the project")
	buildCmd.Flags().BoolVar(&buildFlags.plot, "plot", false, "Also plot the density profile of each monolayer")
	buildCmd.Flags().StringVar(&buildFlags.forcefield, "forcefield", "", "Force field file, instead of looking for oplsaa.xml")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	if buildFlags.all == (len(args) > 0) {
		return errors.New("give job ids or --all, not both")
	}
	ctx := cmd.Context()
	p, err := workspace.OpenProject(global.dir)
	if err != nil {
		return err
	}
	var jobs []*workspace.Job
	if buildFlags.all {
		if jobs, err = p.Jobs(ctx); err != nil {
			return err
		}
	} else {
		for _, id := range args {
			j, err := p.Open(id)
			if err != nil {
				return err
			}
			jobs = append(jobs, j)
		}
	}
	opt := builder.DefaultOptions()
	opt.Forcefield = buildFlags.forcefield
	opt.Plot = buildFlags.plot
	log := consoleLogger()
	var errs []error
	for _, j := range jobs {
		jlog := log.With("job", j.ID)
		params, err := builder.FromStatePoint(j.StatePoint)
		if err == nil && len(params.Unused) > 0 {
			jlog.Warn("Ignoring state point keys", "keys", params.Unused)
		}
		if err == nil {
			_, err = builder.Build(ctx, j.Dir, params, opt, jlog)
		}
		if err != nil {
			jlog.Error("Build failed", "error", err)
			errs = append(errs, fmt.Errorf("job %s: %w", j.ID, err))
			if ctx.Err() != nil {
				break
			}
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), j.ID, "built")
	}
	return errors.Join(errs...)
}
