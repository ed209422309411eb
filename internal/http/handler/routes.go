package handler

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"storeapi/internal/auth"
	"storeapi/internal/http/middleware"
	"storeapi/internal/model"
	"storeapi/internal/query"
	"storeapi/internal/service"
)

var validate = validator.New()

type signUpRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Secret   string `json:"secret" validate:"required,min=8"`
}

type signInRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Secret string `json:"secret" validate:"required"`
}

// fileActionRequest is the tagged body of PATCH /files/:id. Which fields
// are required depends on the action variant.
type fileActionRequest struct {
	Action string   `json:"action" validate:"required"`
	Name   string   `json:"name,omitempty"`
	Emails []string `json:"emails,omitempty" validate:"omitempty,dive,email"`
	Email  string   `json:"email,omitempty" validate:"omitempty,email"`
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Handlers
// stay thin: parse, call the service, translate errors.
func RegisterRoutes(app *fiber.App, db *sql.DB, tokens *auth.TokenService, fileSvc service.FileService, authSvc service.AuthService) {
	// Serve OpenAPI spec and a minimal Swagger UI page
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	// Health endpoint: checks DB connectivity only
	app.Get("/health", HealthCheck(db))
	// Simple liveness probe
	app.Get("/healthz", LivenessProbe())

	app.Post("/auth/signup", SignUp(authSvc))
	app.Post("/auth/signin", SignIn(authSvc))

	requireAuth := middleware.Auth(tokens)
	app.Get("/auth/me", requireAuth, CurrentAccount(authSvc))
	app.Get("/usage", requireAuth, TotalSpaceUsed(fileSvc))

	files := app.Group("/files", requireAuth)
	files.Get("/", ListFiles(fileSvc))
	files.Post("/", UploadFile(fileSvc))
	files.Get("/:id", GetFile(fileSvc))
	files.Get("/:id/download", DownloadFile(fileSvc))
	files.Patch("/:id", MutateFile(fileSvc))
	files.Delete("/:id", DeleteFile(fileSvc))
}

// HealthCheck reports DB connectivity.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe always answers 200.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// SignUp registers a new account and returns it with a session token.
func SignUp(authSvc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req signUpRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if err := validate.Struct(req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "full_name, valid email, and a secret of at least 8 characters are required")
		}

		res, err := authSvc.SignUp(c.UserContext(), req.FullName, req.Email, req.Secret)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// SignIn exchanges credentials for a session token.
func SignIn(authSvc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req signInRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if err := validate.Struct(req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "valid email and secret are required")
		}

		res, err := authSvc.SignIn(c.UserContext(), req.Email, req.Secret)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// CurrentAccount returns the account behind the request's session.
func CurrentAccount(authSvc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		acc, err := authSvc.CurrentAccount(c.UserContext(), middleware.SessionFromCtx(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(acc)
	}
}

// ListFiles lists the files visible to the session. Query parameters:
// types (comma-separated categories), search, sort ("<field>-<asc|desc>"),
// limit.
func ListFiles(fileSvc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		opts := query.Options{
			SearchText: c.Query("search"),
			Sort:       c.Query("sort"),
		}

		if raw := c.Query("types"); raw != "" {
			for _, part := range strings.Split(raw, ",") {
				t := model.FileType(strings.TrimSpace(part))
				if !t.Valid() {
					return writeError(c, fiber.StatusBadRequest, "INVALID_TYPE", "unknown file type: "+string(t))
				}
				opts.Types = append(opts.Types, t)
			}
		}

		if raw := c.Query("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit < 0 {
				return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
			}
			opts.Limit = limit
		}

		res, err := fileSvc.List(c.UserContext(), middleware.SessionFromCtx(c), opts)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// UploadFile stores a multipart upload (field name: file).
func UploadFile(fileSvc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		file, err := fileSvc.Upload(c.UserContext(), middleware.SessionFromCtx(c), f, fh.Filename, fh.Size)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(file)
	}
}

// GetFile returns one file's metadata (the "details" action).
func GetFile(fileSvc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := fileID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		file, err := fileSvc.Get(c.UserContext(), middleware.SessionFromCtx(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(file)
	}
}

// DownloadFile returns a short-lived presigned URL for the file's blob.
func DownloadFile(fileSvc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := fileID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		url, err := fileSvc.Download(c.UserContext(), middleware.SessionFromCtx(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"url": url})
	}
}

// MutateFile dispatches the tagged action body to the matching service
// operation: rename, share, or unshare.
func MutateFile(fileSvc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := fileID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req fileActionRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if err := validate.Struct(req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid action body")
		}

		action, err := ParseFileAction(req.Action)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ACTION", err.Error())
		}

		sess := middleware.SessionFromCtx(c)
		ctx := c.UserContext()

		var file *model.File
		switch action {
		case ActionRename:
			if req.Name == "" {
				return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "name is required for rename")
			}
			file, err = fileSvc.Rename(ctx, sess, id, req.Name)
		case ActionShare:
			if len(req.Emails) == 0 {
				return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "emails are required for share")
			}
			file, err = fileSvc.Share(ctx, sess, id, req.Emails)
		case ActionUnshare:
			if req.Email == "" {
				return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "email is required for unshare")
			}
			file, err = fileSvc.Unshare(ctx, sess, id, req.Email)
		}
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(file)
	}
}

// DeleteFile removes the record and its backing blob.
func DeleteFile(fileSvc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := fileID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := fileSvc.Delete(c.UserContext(), middleware.SessionFromCtx(c), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// TotalSpaceUsed reports the session's per-category storage consumption.
func TotalSpaceUsed(fileSvc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		usage, err := fileSvc.TotalSpaceUsed(c.UserContext(), middleware.SessionFromCtx(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(usage)
	}
}

func fileID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}
