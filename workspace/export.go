/*
 * export.go, part of gosam.
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

package workspace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/samflow/gosam/statepoint"
)

// Record is one line of an export archive.
type Record struct {
	ID         string                `json:"id"`
	StatePoint statepoint.StatePoint `json:"statepoint"`
}

// Export writes the jobs to w as zstd-compressed JSON lines.
func Export(w io.Writer, jobs []*Job) error {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(zw)
	for _, j := range jobs {
		if err := enc.Encode(Record{ID: j.ID, StatePoint: j.StatePoint}); err != nil {
			zw.Close()
			return fmt.Errorf("failed to export job %s: %w", j.ID, err)
		}
	}
	return zw.Close()
}

// Import reads an archive written by Export. Records whose id doesn't
// match their state point are rejected.
func Import(r io.Reader) ([]Record, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	var recs []Record
	s := bufio.NewScanner(zr)
	s.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for s.Scan() {
		var rec Record
		if err := json.Unmarshal(s.Bytes(), &rec); err != nil {
			return nil, fmt.Errorf("record %d: %w", len(recs)+1, err)
		}
		if rec.ID != rec.StatePoint.ID() {
			return nil, fmt.Errorf("record %d: %w: %s", len(recs)+1, ErrIDCollision, rec.ID)
		}
		recs = append(recs, rec)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}
