// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides agent key generation and validation.

# Agent Keys

Creating a draft returns an HMAC-based agent key tied to the draft's storage
key and the AGENT_KEY_SALT secret:

	key := auth.GenerateAgentKey("34a:0421", salt)

Destructive operations (clearing a draft) require it back in the
X-Agent-Key header and verify with constant-time comparison:

	err := auth.ValidateAgentKey("34a:0421", provided, salt)

Keys are deterministic, so they survive a reinstall as long as the salt does.

# Random IDs

GenerateID produces crypto/rand hex identifiers of a given byte length.
*/
package auth
