package handlers

import (
	"log"
	"net/http"
)

// respondWithError sends a plain-text error to the client and logs the
// underlying cause. The user message and the logged message are kept
// separate so internals never leak into a response; an empty logMsg
// falls back to the user message.
func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		msg := logMsg
		if msg == "" {
			msg = userMsg
		}
		log.Printf("%s: %v", msg, err)
	}

	http.Error(w, userMsg, status)
}
