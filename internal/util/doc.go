// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package util provides foundational utilities with no dependencies on
// other internal packages. Everything here depends only on the Go
// standard library, making this a leaf package in the dependency graph.
//
// # Thread Safety
//
// All types in this package are safe for concurrent use from multiple
// goroutines unless their documentation explicitly states otherwise.
// [RingBuffer] is fully thread-safe (protected by mutex).
//
// # Key Types
//
// Ring buffer:
//
//	buffer := util.NewRingBuffer[uint64](1000)
//	buffer.Push(value)
//	items := buffer.ToSlice()
package util
