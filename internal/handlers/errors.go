package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Error().Err(err).Msg(logMsg)
	}

	http.Error(w, userMsg, status)
}
