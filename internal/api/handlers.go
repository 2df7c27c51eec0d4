package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/livp123/suriwatch/internal/cache"
	"github.com/livp123/suriwatch/internal/eve"
	"github.com/livp123/suriwatch/internal/rules"
	xerrors "github.com/livp123/suriwatch/pkg/errors"
)

// AlertsResponse is the grouped preview of the index.
// AlertsResponse 是索引的分组预览。
type AlertsResponse struct {
	SelectedDate string        `json:"selected_date"`
	Dates        []string      `json:"dates"`
	Groups       []cache.Group `json:"groups"`
	BuiltAt      *time.Time    `json:"built_at,omitempty"`
}

// AlertsAllResponse lists every alert of one signature.
// AlertsAllResponse 列出某个签名的全部告警。
type AlertsAllResponse struct {
	Signature    string      `json:"signature"`
	SelectedDate string      `json:"selected_date"`
	Alerts       []eve.Alert `json:"alerts"`
}

// RulesResponse holds both rule files verbatim.
type RulesResponse struct {
	UserRules  string `json:"user_rules"`
	LocalRules string `json:"local_rules"`
}

// refresh reloads the cache when stale. Failures keep the last good data.
// refresh 在缓存过期时重新加载；失败时保留上次的有效数据。
func (s *Server) refresh(r *http.Request) time.Time {
	now := s.now()
	if err := s.cache.RefreshIfStale(r.Context(), now); err != nil {
		s.log.Warnf("[WARN]  Serving cached alerts, refresh failed: %v", err)
	}
	return now
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	limit, ok := queryInt(r, "limit")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}

	now := s.refresh(r)
	date := r.URL.Query().Get("date")
	view := s.cache.View(date, limit, now)
	resp := AlertsResponse{
		SelectedDate: date,
		Dates:        view.Dates,
		Groups:       view.Groups,
	}
	if !view.BuiltAt.IsZero() {
		resp.BuiltAt = &view.BuiltAt
	}
	writeJSONResponse(w, http.StatusOK, resp)
}

func (s *Server) handleAlertsAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	signature := r.URL.Query().Get("signature")
	if signature == "" {
		writeError(w, http.StatusBadRequest, "signature is required")
		return
	}

	now := s.refresh(r)
	date := r.URL.Query().Get("date")
	writeJSONResponse(w, http.StatusOK, AlertsAllResponse{
		Signature:    signature,
		SelectedDate: date,
		Alerts:       s.cache.ListFull(signature, date, now),
	})
}

func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		user, err := s.rules.ReadUser()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		local, err := s.rules.ReadLocal()
		if err != nil {
			// Unreadable local rules are reported inline.
			local = fmt.Sprintf("Error reading %s: %v", s.rules.LocalPath(), err)
		}
		writeJSONResponse(w, http.StatusOK, RulesResponse{UserRules: user, LocalRules: local})

	case http.MethodPost:
		req, err := decodeRuleRequest(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		rule, err := rules.ComposeRequest(req, s.now())
		if err != nil {
			status := http.StatusInternalServerError
			if isClientError(err) {
				status = http.StatusBadRequest
			}
			writeError(w, status, err.Error())
			return
		}
		if err := s.rules.Append(rule); err != nil {
			s.log.Errorf("❌ Failed to append rule: %v", err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.log.Infof("📝 Rule added: %s", rule)
		writeJSONResponse(w, http.StatusCreated, map[string]string{"rule": rule})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleRulesMerge(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if err := s.rules.MergeIntoLocal(); err != nil {
		s.log.Errorf("❌ Failed to merge rules: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.log.Infof("✅ Rules merged into %s", s.rules.LocalPath())
	writeJSONResponse(w, http.StatusOK, map[string]string{
		"status": "ok",
		"local":  s.rules.LocalPath(),
		"backup": s.rules.BackupPath(),
	})
}

// decodeRuleRequest accepts a JSON body or form fields.
// decodeRuleRequest 接受 JSON 请求体或表单字段。
func decodeRuleRequest(r *http.Request) (rules.Request, error) {
	var req rules.Request
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, xerrors.NewRuleError(fmt.Sprintf("invalid JSON: %v", err))
		}
		return req, nil
	}
	if err := r.ParseForm(); err != nil {
		return req, xerrors.NewRuleError(fmt.Sprintf("invalid form: %v", err))
	}
	req.Protocol = r.PostFormValue("protocol")
	req.Port = r.PostFormValue("port")
	req.Message = r.PostFormValue("message")
	return req, nil
}

// isClientError reports whether err came from bad user input.
func isClientError(err error) bool {
	return errors.Is(err, xerrors.ErrInvalidRule) ||
		errors.Is(err, xerrors.ErrInvalidProtocol) ||
		errors.Is(err, xerrors.ErrInvalidPort)
}
