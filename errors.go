// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package asset

import "errors"

// errors.go collects the manager-level error taxonomy (§7, coarsest
// tier). Loader- and cache-level taxonomies live in their own packages
// (font, fonttex, texture, cache, decl) and are not re-exported here;
// the manager only ever needs to know that a load failed, not why.

var (
	// ErrSourceOpenFailed means the repository could not produce a
	// Source for a requested id (not found, or a backend I/O error).
	ErrSourceOpenFailed = errors.New("asset: source open failed")

	// ErrUnsupportedFormat means the format tag resolved for an id has
	// no registered loader function.
	ErrUnsupportedFormat = errors.New("asset: loader unsupported format")

	// ErrNotSupported is returned by Manager.Query and Manager.Save when
	// the manager has no repository. Backends report an operation they
	// do not implement with repo.ErrNotSupported instead.
	ErrNotSupported = errors.New("asset: operation not supported by this repository")

	// ErrNoExtension is returned by Save when an id lacks the file
	// extension needed to resolve its format tag.
	ErrNoExtension = errors.New("asset: id has no extension")

	// ErrQueryTooLarge names the capped-query condition. Manager.Query
	// does not return it: a query that matches more ids than the cap is
	// truncated to the cap without an error.
	ErrQueryTooLarge = errors.New("asset: query result capped")
)
