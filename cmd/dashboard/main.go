package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/Senaseser/assetTracker/models"
	"github.com/Senaseser/assetTracker/providers/apiprovider"
	"github.com/Senaseser/assetTracker/providers/configprovider"
	"github.com/Senaseser/assetTracker/providers/loggerprovider"
	"github.com/Senaseser/assetTracker/providers/notifierprovider"
	"github.com/Senaseser/assetTracker/providers/storageprovider"
	"github.com/Senaseser/assetTracker/services/asset"
	"github.com/Senaseser/assetTracker/services/management"
	"github.com/Senaseser/assetTracker/services/session"
	"go.uber.org/zap"
)

func main() {
	cfg := configprovider.NewConfigProvider()
	cfg.LoadEnv()

	logProvider := loggerprovider.NewLogProvider()
	logProvider.InitLogger()
	defer logProvider.SyncLogger()
	logger := logProvider.GetLogger()

	storage := storageprovider.NewSessionStorageProvider(cfg.GetStoragePath())
	defer storage.Close()

	api := apiprovider.NewAPIClientProvider(cfg, logProvider)
	notifier := notifierprovider.NewNotifierProvider(logProvider)

	sessions := session.NewSessionService(api, storage, notifier, logProvider, cfg.GetSessionTTL())
	assets := asset.NewAssetService(api, notifier, logProvider)
	mgmt := management.NewManagementService(api, notifier, logProvider)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessions.Restore()
	if sessions.Status() != session.StatusAuthenticated {
		if cfg.GetUsername() == "" {
			logger.Fatal("no restorable session; set DASHBOARD_USERNAME and DASHBOARD_PASSWORD")
		}
		if err := sessions.Login(ctx, cfg.GetUsername(), cfg.GetPassword()); err != nil {
			logger.Fatal("login failed", zap.Error(err))
		}
	}
	logger.Info("session established",
		zap.String("username", sessions.Username()),
		zap.Time("expires_at", sessions.ExpiresAt()))

	if err := mgmt.FetchDepartments(ctx); err != nil {
		logger.Warn("failed to fetch departments", zap.Error(err))
	}
	if err := assets.FetchAssets(ctx); err != nil {
		logger.Fatal("failed to fetch assets", zap.Error(err))
	}

	printAssets(os.Stdout, assets.FilteredAssets())
}

func printAssets(w io.Writer, assets []models.Asset) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ASSET\tSERIAL\tDEPARTMENT\tEMPLOYEE\tSTATUS")
	for _, a := range assets {
		status := "available"
		if a.Assigned() {
			status = "assigned"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			a.AssetName, a.SerialNumber, a.Employee.Department.DeptName, a.Employee.FullName, status)
	}
	tw.Flush()
}
