// Package cli provides the interactive SealNote command-line client.
//
// Every command runs the note protocol locally: the password, the derived
// key and the plaintext stay in this process, and only ciphertext and
// hashes travel to the note store.
//
// Commands:
//   - store        encrypt a note under a password
//   - retrieve     decrypt the note stored under a password
//   - expirations  list the accepted expiration choices
//   - help, exit
//
// One-time notes whose delete failed after reading are retried before
// each command and on exit. The REPL is started via App.Run, which blocks
// until the user exits.
package cli
