// Package httpapi exposes the session over a small JSON API: a join
// endpoint, a poll-driven state endpoint, the submission endpoint, and a
// host-key-gated console surface. Clients poll; nothing is pushed.
package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"partyhub/internal/content"
	"partyhub/internal/game"
	"partyhub/internal/qr"
)

type Server struct {
	sess    *game.Session
	catalog *content.Catalog
	regen   *content.Regenerator
	hostKey string
	joinURL string
	log     zerolog.Logger
}

func New(sess *game.Session, catalog *content.Catalog, regen *content.Regenerator, hostKey, joinURL string, log zerolog.Logger) *Server {
	return &Server{
		sess:    sess,
		catalog: catalog,
		regen:   regen,
		hostKey: hostKey,
		joinURL: joinURL,
		log:     log,
	}
}

func (s *Server) Mount(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	api := r.Group("/api")
	api.POST("/join", s.handleJoin)
	api.GET("/state", s.handleState)
	api.POST("/submit", s.handleSubmit)

	host := api.Group("/host", s.requireHostKey)
	host.GET("/state", s.handleHostState)
	host.POST("/action", s.handleHostAction)
	host.GET("/recap", s.handleRecap)
	host.GET("/qr", s.handleQR)
}

func (s *Server) requireHostKey(c *gin.Context) {
	if s.hostKey == "" {
		return
	}
	key := c.GetHeader("X-Host-Key")
	if key == "" {
		key = c.Query("key")
	}
	if key != s.hostKey {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "bad_host_key"})
	}
}

type joinRequest struct {
	PID       string `json:"pid"`
	Name      string `json:"name"`
	LobbyCode string `json:"lobbyCode"`
	Conflict  string `json:"conflict"`
}

func (s *Server) handleJoin(c *gin.Context) {
	var req joinRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_json"})
		return
	}
	pid := req.PID
	if pid == "" {
		pid = uuid.NewString()
	}
	conflict := game.ConflictAsk
	switch req.Conflict {
	case "suffix":
		conflict = game.ConflictSuffix
	case "reclaim":
		conflict = game.ConflictReclaim
	}
	pid, err := s.sess.Join(pid, req.Name, req.LobbyCode, conflict)
	if err != nil {
		s.writeError(c, err)
		return
	}
	name := s.sess.PlayerName(pid)
	resp := gin.H{"pid": pid, "name": name}
	if name == "" {
		// A reclaim was filed; the pid is parked until the host decides.
		resp["pendingReclaim"] = true
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleState(c *gin.Context) {
	s.sess.Tick()
	pid := c.Query("pid")
	resp := gin.H{"state": s.sess.Snapshot()}
	if pid != "" {
		if role, location, ok := s.sess.SpyRole(pid); ok {
			private := gin.H{"role": role}
			if location != "" {
				private["location"] = location
			}
			resp["spyfall"] = private
		}
		if info, ok := s.sess.MafiaInfo(pid); ok {
			resp["mafia"] = info
		}
		if notice := s.sess.TakeReclaimNotice(pid); notice != "" {
			resp["notice"] = notice
		}
	}
	c.JSON(http.StatusOK, resp)
}

type submitRequest struct {
	PID     string       `json:"pid"`
	RoundID int          `json:"roundId"`
	Payload game.Payload `json:"payload"`
}

func (s *Server) handleSubmit(c *gin.Context) {
	var req submitRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_json"})
		return
	}
	if err := s.sess.Submit(req.RoundID, req.PID, req.Payload); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) handleHostState(c *gin.Context) {
	s.sess.Tick()
	c.JSON(http.StatusOK, s.sess.HostSnapshot())
}

func (s *Server) handleRecap(c *gin.Context) {
	c.JSON(http.StatusOK, s.sess.Recap())
}

func (s *Server) handleQR(c *gin.Context) {
	dataURL, err := qr.DataURL(s.joinURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "qr_failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"joinUrl": s.joinURL, "qr": dataURL})
}

type manualPromptRequest struct {
	Text         string   `json:"text"`
	OptionA      string   `json:"optionA"`
	OptionB      string   `json:"optionB"`
	Options      []string `json:"options"`
	CorrectIndex *int     `json:"correctIndex"`
	Target       *int     `json:"target"`
}

type hostActionRequest struct {
	Action    string               `json:"action"`
	Mode      string               `json:"mode"`
	PID       string               `json:"pid"`
	RequestID string               `json:"requestId"`
	Enabled   bool                 `json:"enabled"`
	Count     int                  `json:"count"`
	Names     map[string]string    `json:"names"`
	Settings  *game.Settings       `json:"settings"`
	Prompt    *manualPromptRequest `json:"prompt"`
}

func (s *Server) handleHostAction(c *gin.Context) {
	var req hostActionRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_json"})
		return
	}

	var err error
	switch req.Action {
	case "set_mode":
		err = s.sess.SetMode(game.Mode(req.Mode))
	case "start_round":
		err = s.sess.StartRound(game.Mode(req.Mode))
	case "next_round":
		err = s.sess.NextRound()
	case "reveal":
		err = s.sess.Reveal()
	case "progress":
		err = s.sess.Progress()
	case "reset_round":
		s.sess.ResetRound()
	case "reset_scores":
		s.sess.ResetScores()
	case "kick":
		err = s.sess.Kick(req.PID)
	case "kick_all":
		s.sess.KickAll()
	case "set_teams":
		s.sess.SetTeams(req.Enabled, req.Count, parseTeamNames(req.Names))
	case "randomize_teams":
		s.sess.RandomizeTeams()
	case "update_settings":
		if req.Settings == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing_settings"})
			return
		}
		s.sess.UpdateSettings(*req.Settings)
	case "set_prompt":
		s.sess.SetManualPrompt(toManualPrompt(req.Prompt))
	case "award_point":
		err = s.sess.AwardPoint(req.PID)
	case "approve_reclaim":
		err = s.sess.ApproveReclaim(req.RequestID)
	case "deny_reclaim":
		err = s.sess.DenyReclaim(req.RequestID)
	case "regen_prompts":
		if s.regen == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "regen_unavailable"})
			return
		}
		err = s.regen.Regenerate(c.Request.Context(), s.catalog, game.Mode(req.Mode))
	default:
		err = s.sess.HostAction(req.Action)
	}
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": s.sess.HostMessage()})
}

func parseTeamNames(names map[string]string) map[int]string {
	if len(names) == 0 {
		return nil
	}
	out := make(map[int]string, len(names))
	for k, v := range names {
		if id, err := strconv.Atoi(k); err == nil {
			out[id] = v
		}
	}
	return out
}

func toManualPrompt(req *manualPromptRequest) *game.ManualPrompt {
	if req == nil {
		return nil
	}
	return &game.ManualPrompt{
		Text:         req.Text,
		OptionA:      req.OptionA,
		OptionB:      req.OptionB,
		Options:      req.Options,
		CorrectIndex: req.CorrectIndex,
		Target:       req.Target,
	}
}

var statusByCode = map[string]int{
	"stale_round":          http.StatusConflict,
	"invalid_phase":        http.StatusConflict,
	"submissions_locked":   http.StatusConflict,
	"not_eligible":         http.StatusForbidden,
	"duplicate_submission": http.StatusConflict,
	"invalid_payload":      http.StatusBadRequest,
	"content_rejected":     http.StatusUnprocessableEntity,
	"precondition_unmet":   http.StatusConflict,
	"lobby_locked":         http.StatusForbidden,
	"bad_lobby_code":       http.StatusForbidden,
	"name_taken":           http.StatusConflict,
	"name_required":        http.StatusBadRequest,
	"rename_blocked":       http.StatusForbidden,
	"unknown_player":       http.StatusNotFound,
}

func (s *Server) writeError(c *gin.Context, err error) {
	var rej *game.Rejection
	if errors.As(err, &rej) {
		status, ok := statusByCode[rej.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": rej.Code, "message": rej.Reason})
		return
	}
	s.log.Warn().Err(err).Msg("request rejected")
	c.JSON(http.StatusBadRequest, gin.H{"error": "rejected", "message": err.Error()})
}
