package backend

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/kabbandre/pit-assignment/internal/core"

	"github.com/labstack/echo/v4"
)

const ProbePath = "/probe"

type APIService struct {
	coreService *core.CoreService
	mountPath   string
}

func NewAPIService(config *core.ServiceConfig, coreService *core.CoreService) *APIService {
	return &APIService{
		coreService: coreService,
		mountPath:   strings.TrimSuffix(config.MountPath, "/"),
	}
}

func (s *APIService) SetRoutes(e *echo.Echo) {
	// Set probe route
	e.GET(ProbePath, s.probeHandler)

	// RemoveTrailingSlash rewrites "/images/" to "/images", so the list route
	// is registered on the bare mount path.
	listPath := s.mountPath
	if listPath == "" {
		listPath = "/"
	}
	e.GET(listPath, s.listImagesHandler)
	e.GET(s.mountPath+"/:imageId", s.getImageHandler)
	e.POST(s.mountPath+"/save", s.saveImageHandler)
}

func (s *APIService) probeHandler(ctx echo.Context) error {
	if err := s.coreService.Ping(ctx.Request().Context()); err != nil {
		slog.Warn("probeHandler: database not reachable", "status", http.StatusServiceUnavailable, "error", err)
		return ctx.String(http.StatusServiceUnavailable, "API Service is not ready")
	}
	return ctx.String(http.StatusOK, "API Service is running")
}

func (s *APIService) listImagesHandler(ctx echo.Context) error {
	images, err := s.coreService.GetImages(ctx.Request().Context())
	if err != nil {
		return err
	}
	slog.Info("images received", "count", len(images))
	return ctx.JSON(http.StatusOK, images)
}

// getImageHandler answers 200 with a null body when no image matches.
// Clients rely on this, so it does not send 404.
func (s *APIService) getImageHandler(ctx echo.Context) error {
	id := ctx.Param("imageId")
	image, err := s.coreService.GetImageByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	slog.Info("image received", "image_id", id, "found", image != nil)
	return ctx.JSON(http.StatusOK, image)
}

func (s *APIService) saveImageHandler(ctx echo.Context) error {
	var fields map[string]any
	if err := ctx.Bind(&fields); err != nil {
		return err
	}

	image, err := s.coreService.CreateImage(ctx.Request().Context(), fields)
	if err != nil {
		return err
	}
	slog.Info("image added", "image_id", image.ID)
	return ctx.JSON(http.StatusOK, image)
}
