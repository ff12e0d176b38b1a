// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte(h.version)); err != nil {
		h.logger.Err(err).Str("func", "*Handler.getServerVersion").Msg("failed to write version")
	}
}
