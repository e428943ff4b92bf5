// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fileutil holds small filesystem helpers.
package fileutil

import (
	"os"
)

// WriteFile writes data to dst without leaving a partial file behind. It
// writes to a temporary file next to dst and then moves it into place, so an
// existing dst is either replaced whole or left untouched.
func WriteFile(dst string, data []byte, perm os.FileMode) (err error) {
	tempDst := dst + ".tmp"
	f, err := os.OpenFile(tempDst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() {
		f.Close()
		if err == nil {
			err = os.Rename(tempDst, dst)
		}
		if err != nil {
			os.Remove(tempDst)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return err
	}
	return f.Sync()
}
