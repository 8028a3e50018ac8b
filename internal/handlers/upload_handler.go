package handlers

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"apollohr/resume-screener/internal/models"
	"apollohr/resume-screener/internal/repositories"
	"apollohr/resume-screener/internal/services"
)

type UploadHandler struct {
	sessionRepo    repositories.SessionRepository
	storageService services.StorageService
	extractor      services.TextExtractor
	maxFileSize    int64
	logger         *zap.Logger
}

func NewUploadHandler(
	sessionRepo repositories.SessionRepository,
	storageService services.StorageService,
	extractor services.TextExtractor,
	maxFileSize int64,
	logger *zap.Logger,
) *UploadHandler {
	return &UploadHandler{
		sessionRepo:    sessionRepo,
		storageService: storageService,
		extractor:      extractor,
		maxFileSize:    maxFileSize,
		logger:         logger,
	}
}

// HandleUpload handles POST /sessions/:id/documents. The multipart form
// carries a single "job_description" file and any number of "resumes" files.
// A document whose extraction yields no text is reported as skipped, never
// fatal for the rest of the upload.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	session, err := findSession(c, h.sessionRepo)
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "failed to parse multipart form")
	}

	files := form.File

	var documents []models.DocumentStatus

	// Process the job description
	if jdFiles, exists := files["job_description"]; exists && len(jdFiles) > 0 {
		jdFile := jdFiles[0]

		status, text, err := h.readDocument(jdFile, "job_description")
		if err != nil {
			return err
		}

		if !status.Skipped {
			if err := h.sessionRepo.SetJobDescription(session.ID, text); err != nil {
				return fiber.NewError(fiber.StatusNotFound, "session not found")
			}
		}
		documents = append(documents, status)
	}

	// Process the resumes
	for _, resumeFile := range files["resumes"] {
		status, text, err := h.readDocument(resumeFile, "resume")
		if err != nil {
			return err
		}

		if !status.Skipped {
			if err := h.sessionRepo.AddResume(session.ID, resumeFile.Filename, text); err != nil {
				return fiber.NewError(fiber.StatusNotFound, "session not found")
			}
		}
		documents = append(documents, status)
	}

	if len(documents) == 0 {
		return fiber.NewError(fiber.StatusBadRequest,
			"no files uploaded; provide 'job_description' and/or 'resumes' as PDF or text files")
	}

	return c.Status(fiber.StatusCreated).JSON(models.UploadResponse{
		Documents: documents,
	})
}

// readDocument extracts and cleans the text of one uploaded file, archiving
// the raw bytes on the way through.
func (h *UploadHandler) readDocument(file *multipart.FileHeader, kind string) (models.DocumentStatus, string, error) {
	status := models.DocumentStatus{
		Filename: file.Filename,
		Kind:     kind,
	}

	if file.Size > h.maxFileSize {
		return status, "", fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("file %s too large, max size: %d bytes", file.Filename, h.maxFileSize))
	}

	src, err := file.Open()
	if err != nil {
		return status, "", fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("failed to open uploaded file %s", file.Filename))
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return status, "", fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("failed to read uploaded file %s", file.Filename))
	}

	// Best-effort archive; the pipeline works on extracted text either way.
	if _, _, err := h.storageService.SaveFile(data, file.Filename, kind); err != nil {
		h.logger.Warn("failed to archive uploaded file",
			zap.String("filename", file.Filename),
			zap.Error(err),
		)
	}

	text := services.CleanText(h.extractor.ExtractText(data, file.Filename))
	if text == "" {
		status.Skipped = true
		status.Reason = "no text could be extracted"
		return status, "", nil
	}

	status.Characters = len(text)
	return status, text, nil
}
