// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package notify implements fire-and-forget notification fan-out for
governance events.

The Bus queues events and delivers them from a worker goroutine, so the
voting engine never blocks on notification delivery. Two subscriber kinds
cover the two downstream delivery channels: ChannelSubscriber for in-process
consumers (socket fan-out) and WebhookSubscriber for an external
notification service (polling side). Both are best-effort; a slow or
unreachable consumer results in dropped or logged events, never a stalled
vote transaction.
*/
package notify
