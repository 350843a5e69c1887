package devserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/onepay-ir/onepay-client/identity"
)

type registerPayload struct {
	FullName string `json:"full_name"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type loginPayload struct {
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload registerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	if payload.FullName == "" || payload.Mobile == "" || payload.Password == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "Missing required fields")
		return
	}
	email := strings.ToLower(strings.TrimSpace(payload.Email))

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byMobile[payload.Mobile]; taken {
		writeDetail(w, http.StatusConflict, "Mobile already registered")
		return
	}
	if email != "" {
		if _, taken := s.byEmail[email]; taken {
			writeDetail(w, http.StatusConflict, "Email already registered")
			return
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	u := &user{
		Profile: identity.Profile{
			ID:        s.nextUserID,
			FullName:  payload.FullName,
			Mobile:    payload.Mobile,
			Email:     email,
			CreatedAt: s.now().UTC(),
		},
		PasswordHash: string(hash),
	}
	s.nextUserID++
	s.users[u.ID] = u
	s.byMobile[u.Mobile] = u.ID
	if email != "" {
		s.byEmail[email] = u.ID
	}

	token, err := s.mintToken(u.ID, s.now())
	if err != nil {
		log.Err(err).Msg("minting token failed")
		writeDetail(w, http.StatusInternalServerError, "Failed to create token")
		return
	}
	writeJSON(w, http.StatusCreated, identity.Token{AccessToken: token, User: u.Profile})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	userID, exists := s.byMobile[payload.Mobile]
	if !exists {
		writeDetail(w, http.StatusUnauthorized, "Invalid mobile or password")
		return
	}
	u := s.users[userID]
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(payload.Password)) != nil {
		writeDetail(w, http.StatusUnauthorized, "Invalid mobile or password")
		return
	}

	token, err := s.mintToken(u.ID, s.now())
	if err != nil {
		log.Err(err).Msg("minting token failed")
		writeDetail(w, http.StatusInternalServerError, "Failed to create token")
		return
	}
	writeJSON(w, http.StatusOK, identity.Token{AccessToken: token, User: u.Profile})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currentUser(r).Profile)
}
