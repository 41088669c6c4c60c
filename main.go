package main

import (
	"github.com/cppla/earlybird/config"
	"github.com/cppla/earlybird/models"
	"github.com/cppla/earlybird/routes"
	"github.com/cppla/earlybird/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.User{}, &models.QRCode{}, &models.Scan{}, &models.UserSetting{})

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
