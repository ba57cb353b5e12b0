package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/careerlift/resumeaudit/admission"
	"github.com/careerlift/resumeaudit/config"
	"github.com/careerlift/resumeaudit/payments"
	"github.com/careerlift/resumeaudit/store"
	"github.com/careerlift/resumeaudit/utils"
)

// UploadController accepts paid resume submissions. All decision making lives
// in the admission workflow; this controller only translates between HTTP and
// the workflow's types.
type UploadController struct {
	newVerifier func() admission.PaymentVerifier
	newStore    func(ctx context.Context) (admission.ObjectStore, error)
	counter     admission.SubmissionCounter
}

// NewUploadController wires the controller to Stripe, the object store, and
// the database counter. Provider handles are built per request from config so
// a credential fixed at runtime takes effect without a restart. A factory
// returns nil when the corresponding credentials are absent; the workflow
// turns that into a configuration error at the right step.
func NewUploadController(db *gorm.DB) *UploadController {
	return &UploadController{
		newVerifier: func() admission.PaymentVerifier {
			cfg := config.Get()
			if !cfg.PaymentConfigured() {
				return nil
			}
			return payments.New(cfg.StripeSecretKey)
		},
		newStore: func(ctx context.Context) (admission.ObjectStore, error) {
			cfg := config.Get()
			if !cfg.StorageConfigured() {
				return nil, nil
			}
			return store.NewObjects(ctx, cfg)
		},
		counter: store.NewCounter(db),
	}
}

// Upload handles POST /upload: multipart form with session_id, email, file.
func (u *UploadController) Upload(ctx *gin.Context) {
	att := admission.Attempt{
		SessionID: ctx.PostForm("session_id"),
		Email:     ctx.PostForm("email"),
	}

	// FormFile fails for an absent field and for a plain string field alike;
	// both count as a missing file.
	if fh, err := ctx.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			if utils.Sugar != nil {
				utils.Sugar.Errorf("opening uploaded file failed: %v", err)
			}
			utils.Fail(ctx, http.StatusInternalServerError, utils.GenericErrorMessage)
			return
		}
		defer f.Close()
		att.File = &admission.FilePart{
			Reader:      f,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
		}
	}

	objects, err := u.newStore(ctx.Request.Context())
	if err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Errorf("object store init failed: %v", err)
		}
		// Treated like missing storage credentials: the workflow reports it
		// at the storage step so earlier checks keep their precedence.
		objects = nil
	}

	wf := &admission.Workflow{
		Verifier: u.newVerifier(),
		Store:    objects,
		Counter:  u.counter,
		Log:      utils.Sugar,
	}

	res, err := wf.Admit(ctx.Request.Context(), att)
	if err != nil {
		status := admission.HTTPStatus(err)
		if status >= http.StatusInternalServerError && utils.Sugar != nil {
			utils.Sugar.Errorf("upload rejected: %v", err)
		}
		utils.Fail(ctx, status, admission.UserMessage(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"ok":           true,
		"message":      "Upload received",
		"storage_path": res.StorageKey,
		"email":        res.Email,
		"session_id":   res.SessionID,
	})
}
