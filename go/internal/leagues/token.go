package leagues

import gonanoid "github.com/matoous/go-nanoid/v2"

// joinTokenLength gives ~128 bits of entropy over the default 64-character
// alphabet, so tokens are not guessable or sequential.
const joinTokenLength = 22

// NewJoinToken generates an opaque league join token.
func NewJoinToken() (string, error) {
	return gonanoid.New(joinTokenLength)
}
