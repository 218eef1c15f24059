package server

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/skill-profiler/internal/db"
)

// maxUploadBytes bounds the size of an uploaded document.
const maxUploadBytes = 16 << 20 // 16 MiB

// ingestRequest is the JSON body for URL-only submissions.
type ingestRequest struct {
	URLs    []string       `json:"urls" validate:"omitempty,dive,url"`
	Options map[string]any `json:"options,omitempty"`
}

// jobResponse is the polling projection of a job.
type jobResponse struct {
	ID        uuid.UUID    `json:"id"`
	Status    db.JobStatus `json:"status"`
	Progress  int          `json:"progress"`
	ProfileID *uuid.UUID   `json:"profile_id,omitempty"`
	Error     *string      `json:"error,omitempty"`
}

func toJobResponse(job *db.Job) jobResponse {
	return jobResponse{
		ID:        job.ID,
		Status:    job.Status,
		Progress:  job.Status.Progress(),
		ProfileID: job.ProfileID,
		Error:     job.Error,
	}
}

// handleIngest accepts a document and/or a list of URLs and queues an
// analysis job. Multipart form submissions carry the document; a JSON body
// carries URLs only. Responds 202 with the job for polling.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	payload, err := s.parseIngest(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if payload.FilePath == "" && len(payload.URLs) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "nothing to analyze: provide a file or at least one url")
		return
	}

	job, err := s.db.CreateJob(r.Context(), payload)
	if err != nil {
		s.log.Error("failed to create job", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to create job")
		return
	}

	s.pool.Submit(job.ID, job.Payload)

	s.jsonResponse(w, http.StatusAccepted, toJobResponse(job))
}

// parseIngest extracts the job payload from either a multipart form or a
// JSON body.
func (s *Server) parseIngest(r *http.Request) (db.JobPayload, error) {
	var payload db.JobPayload

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var req ingestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return payload, fmt.Errorf("invalid request body")
		}
		if err := s.validator.Struct(req); err != nil {
			return payload, fmt.Errorf("%s", extractValidationErrors(err))
		}
		payload.URLs = req.URLs
		payload.Options = req.Options
		return payload, nil
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return payload, fmt.Errorf("invalid multipart form")
	}

	for _, raw := range r.MultipartForm.Value["urls"] {
		for _, u := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == '\n' }) {
			if u = strings.TrimSpace(u); u != "" {
				payload.URLs = append(payload.URLs, u)
			}
		}
	}
	if opts := r.FormValue("options"); opts != "" {
		if err := json.Unmarshal([]byte(opts), &payload.Options); err != nil {
			return payload, fmt.Errorf("invalid options JSON")
		}
	}

	file, header, err := r.FormFile("file")
	if err == http.ErrMissingFile {
		return payload, nil
	}
	if err != nil {
		return payload, fmt.Errorf("invalid file upload")
	}
	defer file.Close()

	path, err := s.saveUpload(file, header.Filename)
	if err != nil {
		return payload, err
	}
	payload.FilePath = path
	return payload, nil
}

// saveUpload persists an uploaded document under the upload directory with
// a fresh name, keeping only the original extension.
func (s *Server) saveUpload(file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	path := filepath.Join(s.uploadDir, uuid.New().String()+ext)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to store upload")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(file, maxUploadBytes)); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to store upload")
	}
	return path, nil
}

// handleStatus reports a job's lifecycle state and progress.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job id")
		return
	}

	job, err := s.db.GetJob(r.Context(), id)
	if err != nil {
		s.log.Error("failed to get job", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to get job")
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, (&ErrJobNotFound{JobID: id}).Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, toJobResponse(job))
}

// profileResponse pairs the stored profile with its per-skill evidence.
type profileResponse struct {
	Profile *db.Profile       `json:"profile"`
	Skills  []db.ProfileSkill `json:"skills"`
}

// handleProfile returns the aggregated profile for a finished job. While
// the job is still running it responds 202 with the current status so
// clients can keep polling the same URL.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("job_id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job id")
		return
	}

	job, err := s.db.GetJob(r.Context(), jobID)
	if err != nil {
		s.log.Error("failed to get job", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to get job")
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, (&ErrJobNotFound{JobID: jobID}).Error())
		return
	}

	if job.Status == db.StatusError {
		s.jsonResponse(w, http.StatusUnprocessableEntity, toJobResponse(job))
		return
	}
	if job.Status != db.StatusDone || job.ProfileID == nil {
		s.jsonResponse(w, http.StatusAccepted, toJobResponse(job))
		return
	}

	profile, err := s.db.GetProfile(r.Context(), *job.ProfileID)
	if err != nil {
		s.log.Error("failed to get profile", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to get profile")
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, (&ErrProfileNotFound{ProfileID: *job.ProfileID}).Error())
		return
	}

	skills, err := s.db.ProfileSkills(r.Context(), profile.ID)
	if err != nil {
		s.log.Error("failed to get profile skills", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to get profile skills")
		return
	}

	s.jsonResponse(w, http.StatusOK, profileResponse{Profile: profile, Skills: skills})
}

// handleDeleteProfile removes a profile and its evidence.
func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid profile id")
		return
	}

	profile, err := s.db.GetProfile(r.Context(), id)
	if err != nil {
		s.log.Error("failed to get profile", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to get profile")
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, (&ErrProfileNotFound{ProfileID: id}).Error())
		return
	}

	if err := s.db.DeleteProfile(r.Context(), id); err != nil {
		s.log.Error("failed to delete profile", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to delete profile")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
