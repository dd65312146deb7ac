// seehuhn.de/go/vision - raster drawing and volumetric fusion
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package volume

import (
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// span is the half-open index range [lo, hi).
type span struct {
	lo, hi int
}

// split divides [0, n) into contiguous spans, a few per available CPU.
func split(n int) []span {
	if n <= 0 {
		return nil
	}
	parts := min(n, 4*runtime.GOMAXPROCS(0))
	res := make([]span, 0, parts)
	for i := range parts {
		res = append(res, span{lo: i * n / parts, hi: (i + 1) * n / parts})
	}
	return res
}

// parallel calls fn once for every span, concurrently, and returns when
// all calls have finished.  The first argument of fn is the index of the
// span, for use with per-span result slots.  The result is the first error
// returned by fn; a panicking call is reported as an error.
func parallel(spans []span, fn func(i int, s span) error) error {
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, s := range spans {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = errors.Errorf("worker %d: %v", i, r)
				}
			}()
			return fn(i, s)
		})
	}
	return g.Wait()
}

// forEach is like parallel, for workers without an error result.  A panic
// in a worker is raised again on the calling goroutine.
func forEach(spans []span, fn func(i int, s span)) {
	err := parallel(spans, func(i int, s span) error {
		fn(i, s)
		return nil
	})
	if err != nil {
		panic(err)
	}
}
