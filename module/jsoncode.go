// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package module

import "encoding/json"

// decodeJSONCode parses a constant's pre-rendered JSON text into the
// generic any tree an Adapter.DecodeJSON expects. This is the one spot
// in the module that talks encoding/json directly: every dynamic value
// elsewhere flows through record/adapter types, never through
// encoding/json's struct tags, so there is no ecosystem JSON library to
// reach for here instead (see DESIGN.md).
func decodeJSONCode(code string, out *any) error {
	return json.Unmarshal([]byte(code), out)
}
