/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import "time"

const (
	UserAgent      = "tennistour-entrybot/0.4.0 (+https://github.com/mikeb26/tennistour-entrybot)"
	WebCacheBucket = "bopmatic-tennistour-entrybot-prod-webcache"

	// DefaultDatasetUrl is where the site generator publishes the merged
	// dataset consumed by the browsing commands and the discord bot.
	DefaultDatasetUrl = "https://tennistour-entrybot.bopmatic.com/data.js"

	// RequestDelay spaces successive fetches against the same entry list
	// site.
	RequestDelay = 1500 * time.Millisecond
)
