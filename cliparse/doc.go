// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse parses agent configuration from CLI flags with environment
variable fallback.

# Precedence

CLI flags win over environment variables. Secrets should come from the
environment (or a .env file loaded by main); flags exist for development.

# Settings

	-p          PORT             server port (default 4034)
	-d          DATABASE_URL     sqlite path or postgres URL
	-t          DATABASE_TYPE    sqlite (default) or postgres
	-ocr        OCR_URL          OCR recognition service (required)
	-submit     SUBMIT_URL       submission endpoint (required)
	-candidates CANDIDATES_URL   candidate source (optional)
	--agent-salt AGENT_KEY_SALT  agent key HMAC secret (required)

The sqlite default database path is fieldtally.db in the working directory.
*/
package cliparse
