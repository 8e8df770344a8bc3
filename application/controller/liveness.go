package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	apperrors "liveface.io/application/appErrors"
	"liveface.io/application/controller/dto"
	"liveface.io/application/interfaces"
	"liveface.io/application/services/liveness"
	"liveface.io/application/utils"
	"liveface.io/infrastructure/database/repository/cache"
	server_response "liveface.io/infrastructure/serverResponse"
	"liveface.io/infrastructure/validator"
)

func challengeCacheKey(userID string) string {
	return fmt.Sprintf("%s-liveness-challenge", userID)
}

// VerifyLiveness reduces an ordered burst of frames into a batch verdict and
// advances the user's movement challenge.
func VerifyLiveness(ctx *interfaces.ApplicationContext[dto.VerifyLivenessDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr, ctx.DeviceID)
		return
	}

	verdict, err := liveness.Service.ProcessBatch(context.Background(), ctx.Body.UserID, ctx.Body.Frames)
	if err != nil {
		respondBatchError(ctx.Ctx, err, ctx.DeviceID)
		return
	}

	// the challenge snapshot cached for polling is stale after any batch
	cache.Cache.DeleteOne(challengeCacheKey(ctx.Body.UserID))

	session := verdict.Session
	response := dto.LivenessVerificationResponse{
		Status:            "ok",
		SamePersonBatch:   utils.GetBooleanPointer(verdict.SamePerson),
		MatchingRatio:     utils.GetFloat64Pointer(verdict.MatchRatio),
		AverageSimilarity: utils.GetFloat64Pointer(verdict.AverageSimilarity),
		ProcessingTime:    utils.GetFloat64Pointer(verdict.ProcessingTime.Seconds()),
		FramesAnalyzed:    &verdict.FramesAnalyzed,
		MovementHistory:   session.MovementHistory,
		NextExpectedMove:  session.NextExpectedMove,
		Finished:          session.Finished,
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "liveness verification completed", response, nil, nil, nil)
}

// respondBatchError maps engine failures onto the API error contract: the
// batch-level taxonomy comes back as status "error" with a readable message,
// everything else is a transport-level failure.
func respondBatchError(ctx any, err error, deviceID string) {
	var message string
	switch {
	case errors.Is(err, liveness.ErrInvalidInput):
		apperrors.ClientError(ctx, "at least one frame is required", nil, nil, deviceID)
		return
	case errors.Is(err, liveness.ErrNoReferenceEmbeddings):
		message = "no reference faces enrolled for this user"
	case errors.Is(err, liveness.ErrNoValidFace):
		message = "no valid face detected in the supplied frames"
	case errors.Is(err, liveness.ErrDataUnavailable):
		apperrors.ExternalDependencyError(ctx, "reference store", "503", err, deviceID)
		return
	default:
		apperrors.UnknownError(ctx, err, nil, deviceID)
		return
	}
	response := dto.LivenessVerificationResponse{
		Status:          "error",
		Message:         message,
		MovementHistory: []string{},
	}
	server_response.Responder.Respond(ctx, http.StatusOK, "liveness verification completed", response, nil, nil, nil)
}

// VerifySingleFrame scores one frame against the user's enrolled faces
// without touching challenge state.
func VerifySingleFrame(ctx *interfaces.ApplicationContext[dto.VerifySingleFrameDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr, ctx.DeviceID)
		return
	}

	verdict, err := liveness.Service.ProcessFrame(context.Background(), ctx.Body.UserID, ctx.Body.Frame)
	if err != nil {
		var message string
		switch {
		case errors.Is(err, liveness.ErrNoReferenceEmbeddings):
			message = "no reference faces enrolled for this user"
		case errors.Is(err, liveness.ErrNoValidFace):
			message = "no face detected in the supplied frame"
		case errors.Is(err, liveness.ErrDataUnavailable):
			apperrors.ExternalDependencyError(ctx.Ctx, "reference store", "503", err, ctx.DeviceID)
			return
		default:
			apperrors.UnknownError(ctx.Ctx, err, nil, ctx.DeviceID)
			return
		}
		server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "frame verification completed", dto.SingleFrameVerificationResponse{
			Status:  "error",
			Message: message,
		}, nil, nil, nil)
		return
	}

	response := dto.SingleFrameVerificationResponse{
		Status:         "ok",
		BestSimilarity: utils.GetFloat64Pointer(verdict.BestSimilarity),
		SamePerson:     utils.GetBooleanPointer(verdict.SamePerson),
	}
	if verdict.MatchedFaceID != "" {
		response.MatchedFaceID = &verdict.MatchedFaceID
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "frame verification completed", response, nil, nil, nil)
}

// GetChallenge returns the user's current movement challenge, issuing the
// default one for first-time users. Snapshots are cached briefly so clients
// polling for progress do not hammer the session store.
func GetChallenge(ctx *interfaces.ApplicationContext[any]) {
	userID := ctx.GetStringParameter("userID")
	if userID == "" {
		apperrors.ClientError(ctx.Ctx, "userID is required", nil, nil, ctx.DeviceID)
		return
	}

	if cached := cache.Cache.FindOne(challengeCacheKey(userID)); cached != nil {
		var response dto.ChallengeResponse
		if err := json.Unmarshal([]byte(*cached), &response); err == nil {
			server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "liveness challenge", response, nil, nil, nil)
			return
		}
	}

	session, err := liveness.Service.Challenge(context.Background(), userID)
	if err != nil {
		apperrors.ExternalDependencyError(ctx.Ctx, "reference store", "503", err, ctx.DeviceID)
		return
	}

	response := dto.ChallengeResponse{
		UserID:           session.UserID,
		RequiredSequence: session.RequiredSequence,
		MovementHistory:  session.MovementHistory,
		NextExpectedMove: session.NextExpectedMove,
		Finished:         session.Finished,
	}
	if payload, err := json.Marshal(response); err == nil {
		cache.Cache.CreateEntry(challengeCacheKey(userID), payload, liveness.Service.Config().ChallengeTTL)
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "liveness challenge", response, nil, nil, nil)
}

// ResetLivenessSession restarts the user's challenge from scratch.
func ResetLivenessSession(ctx *interfaces.ApplicationContext[any]) {
	userID := ctx.GetStringParameter("userID")
	if userID == "" {
		apperrors.ClientError(ctx.Ctx, "userID is required", nil, nil, ctx.DeviceID)
		return
	}

	session, err := liveness.Service.ResetSession(context.Background(), userID)
	if err != nil {
		apperrors.ExternalDependencyError(ctx.Ctx, "reference store", "503", err, ctx.DeviceID)
		return
	}
	cache.Cache.DeleteOne(challengeCacheKey(userID))

	response := dto.ChallengeResponse{
		UserID:           session.UserID,
		RequiredSequence: session.RequiredSequence,
		MovementHistory:  session.MovementHistory,
		NextExpectedMove: session.NextExpectedMove,
		Finished:         session.Finished,
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "liveness session reset", response, nil, nil, nil)
}
