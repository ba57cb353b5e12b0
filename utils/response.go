package utils

import "github.com/gin-gonic/gin"

// GenericErrorMessage is the non-leaking text returned for unexpected failures.
const GenericErrorMessage = "An unexpected error occurred. Please try again later."

// Fail writes the uniform error body: {"error": "..."}.
func Fail(ctx *gin.Context, status int, errMsg string) {
	ctx.JSON(status, gin.H{"error": errMsg})
}

// FailWithMessage writes an error body that also carries a user-facing message.
func FailWithMessage(ctx *gin.Context, status int, errMsg, userMsg string) {
	ctx.JSON(status, gin.H{"error": errMsg, "message": userMsg})
}
