// Copyright (c) 2026 Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration parsing for the API server.

Configuration comes from CLI flags with environment variable fallback:

  - PORT (-p): server port (default: 3000)
  - STORE_DRIVER (-t): memory, postgres, sqlite or mongo (default: memory)
  - DATABASE_URL (-d): connection string, required for non-memory drivers
  - JWT_SECRET (--jwt-secret): token signing secret, always required
  - TOKEN_TTL_HOURS (--token-ttl): bearer token lifetime (default: 168)

ParseFlags returns an explicit Config struct; no package reads these values
from the environment after startup.
*/
package cliparse
