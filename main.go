package main

import (
	"github.com/careerlift/resumeaudit/config"
	"github.com/careerlift/resumeaudit/models"
	"github.com/careerlift/resumeaudit/routes"
	"github.com/careerlift/resumeaudit/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.SubmissionCounter{}, &models.Submission{})

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
