package routev1

import (
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	apperrors "liveface.io/application/appErrors"
	"liveface.io/application/controller"
	"liveface.io/application/controller/dto"
	"liveface.io/application/interfaces"
)

func LivenessRouter(router *gin.RouterGroup) {
	livenessRouter := router.Group("/liveness")
	{
		livenessRouter.GET("/:userID/challenge", func(ctx *gin.Context) {
			controller.GetChallenge(&interfaces.ApplicationContext[any]{
				Ctx:      ctx,
				DeviceID: ctx.GetHeader("X-Device-Id"),
				Param: map[string]any{
					"userID": ctx.Param("userID"),
				},
			})
		})

		livenessRouter.POST("/:userID/verify", func(ctx *gin.Context) {
			form, err := ctx.MultipartForm()
			if err != nil {
				apperrors.ErrorProcessingPayload(ctx, nil)
				return
			}
			frames, err := readMultipartFiles(form.File["frames"])
			if err != nil {
				apperrors.ErrorProcessingPayload(ctx, nil)
				return
			}
			controller.VerifyLiveness(&interfaces.ApplicationContext[dto.VerifyLivenessDTO]{
				Ctx: ctx,
				Body: &dto.VerifyLivenessDTO{
					UserID: ctx.Param("userID"),
					Frames: frames,
				},
				DeviceID: ctx.GetHeader("X-Device-Id"),
			})
		})

		livenessRouter.POST("/:userID/frame", func(ctx *gin.Context) {
			fileHeader, err := ctx.FormFile("frame")
			if err != nil {
				apperrors.ErrorProcessingPayload(ctx, nil)
				return
			}
			frames, err := readMultipartFiles([]*multipart.FileHeader{fileHeader})
			if err != nil {
				apperrors.ErrorProcessingPayload(ctx, nil)
				return
			}
			controller.VerifySingleFrame(&interfaces.ApplicationContext[dto.VerifySingleFrameDTO]{
				Ctx: ctx,
				Body: &dto.VerifySingleFrameDTO{
					UserID: ctx.Param("userID"),
					Frame:  frames[0],
				},
				DeviceID: ctx.GetHeader("X-Device-Id"),
			})
		})

		livenessRouter.DELETE("/:userID/session", func(ctx *gin.Context) {
			controller.ResetLivenessSession(&interfaces.ApplicationContext[any]{
				Ctx:      ctx,
				DeviceID: ctx.GetHeader("X-Device-Id"),
				Param: map[string]any{
					"userID": ctx.Param("userID"),
				},
			})
		})
	}
}

// readMultipartFiles loads the uploaded frame parts in the order the client
// sent them; that order is the temporal order of the burst.
func readMultipartFiles(headers []*multipart.FileHeader) ([][]byte, error) {
	frames := make([][]byte, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			return nil, err
		}
		payload, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, err
		}
		frames = append(frames, payload)
	}
	return frames, nil
}
