// Package logtail follows a growing log file and delivers each complete line
// exactly once, in order.
//
// # Overview
//
// A Session owns one open file, the byte offset read so far and the identity
// of the file the path pointed at. Open collects the last N lines, Poll reads
// whatever was appended since, and Follow drives Poll from a Waiter (a timer
// or filesystem notifications) until the file disappears.
//
//	sess, err := logtail.Open("/var/log/app.log", 10)
//	if err != nil {
//		return err
//	}
//	defer sess.Close()
//	for _, line := range sess.Initial() {
//		fmt.Println(line)
//	}
//	err = sess.Follow(ctx, watch.NewTicker(time.Second), func(line string) error {
//		_, err := fmt.Println(line)
//		return err
//	})
//
// # Reading the Tail
//
// Open never loads the whole file. It walks backwards from the end in 64KB
// chunks counting newlines until it has seen N of them, then reads forward
// from that point:
//
//	1. Find the last newline in the file (end of the last complete line)
//	2. Scan backwards from there until N line starts are found
//	3. Read forward from that offset to the end of the last complete line
//
// Memory use is O(N × average line length) and the work done does not
// depend on how large the file has grown.
//
// # Complete Lines Only
//
// A line is complete when it ends in '\n' (a preceding '\r' is stripped).
// The offset only ever moves to a position just past a newline, so a line
// written in two halves across two polls is delivered once, whole. The
// fragment that ends a file at Open time is exposed through Remainder for
// callers that print once and exit.
//
// # Rotation and Truncation
//
// Each Poll re-stats the path:
//
//   - Missing path: ErrFileRemoved, which ends Follow
//   - Different identity (rename + recreate rotation): drain the complete
//     lines left in the old handle, switch to the new file at offset 0
//   - Size below the offset (copytruncate): read again from offset 0
//   - Size equal to the offset: nothing to do, empty result
//
// Identity is pluggable through Identifier. StatIdentifier uses os.SameFile
// (device and inode on Unix). FingerprintIdentifier compares leading bytes
// for filesystems without stable inodes.
//
// # Error Handling
//
//   - OpenError: the file could not be opened at startup (fatal)
//   - ReadError: transient failure while following; Follow logs and retries
//   - ErrFileRemoved: the followed path is gone; an expected end state
//
// # Concurrency
//
// A Session is single-goroutine. Waiters coalesce bursts of notifications,
// and Poll is idempotent when nothing changed, so a spurious wake-up never
// duplicates a line.
package logtail
