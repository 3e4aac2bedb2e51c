package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"

	"cotizador/collections"
	"cotizador/handlers"
	"cotizador/services"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	parser := services.NewQuoteParser()
	quotingClient := services.NewQuotingClientFromEnv()

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Serve the SPA build from ./static
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		// ── Public quotation form ────────────────────────────────
		se.Router.POST("/api/quotes/generate",
			handlers.HandleQuoteGenerate(app, quotingClient, parser))

		// ── Admin area ───────────────────────────────────────────
		admin := se.Router.Group("/api")
		admin.BindFunc(handlers.RequireAdmin())

		// Quotation history + exports
		admin.GET("/quotes", handlers.HandleQuoteList(app))
		admin.GET("/quotes/{id}", handlers.HandleQuoteView(app, parser))
		admin.DELETE("/quotes/{id}", handlers.HandleQuoteDelete(app))
		admin.GET("/quotes/{id}/export/{format}", handlers.HandleQuoteExport(app, parser))

		// Balance / supplier comparison
		admin.POST("/balance/compute", handlers.HandleBalanceCompute(app))

		// Suppliers
		admin.GET("/suppliers", handlers.HandleSupplierList(app))
		admin.POST("/suppliers", handlers.HandleSupplierCreate(app))
		admin.PATCH("/suppliers/{id}", handlers.HandleSupplierUpdate(app))
		admin.DELETE("/suppliers/{id}", handlers.HandleSupplierDelete(app))

		// Products
		admin.GET("/products", handlers.HandleProductList(app))
		admin.POST("/products", handlers.HandleProductCreate(app))
		admin.PATCH("/products/{id}", handlers.HandleProductUpdate(app))
		admin.DELETE("/products/{id}", handlers.HandleProductDelete(app))
		admin.GET("/products/{id}/suppliers", handlers.HandleSupplierProductList(app))

		// Supplier-product price links
		admin.POST("/suppliers/{supplierId}/products/{productId}",
			handlers.HandleSupplierProductLink(app))
		admin.DELETE("/suppliers/{supplierId}/products/{productId}",
			handlers.HandleSupplierProductUnlink(app))

		// Catalog import
		admin.POST("/products/import/validate", handlers.HandleProductImportValidate(app))
		admin.POST("/products/import/commit", handlers.HandleProductImportCommit(app))

		// Inventory
		admin.GET("/inventory", handlers.HandleInventoryList(app))
		admin.POST("/inventory", handlers.HandleInventoryMove(app))

		// Task board
		admin.GET("/tasks", handlers.HandleTaskList(app))
		admin.POST("/tasks", handlers.HandleTaskCreate(app))
		admin.PATCH("/tasks/{id}", handlers.HandleTaskUpdate(app))
		admin.DELETE("/tasks/{id}", handlers.HandleTaskDelete(app))

		// Social content calendar
		admin.GET("/social-posts", handlers.HandleSocialPostList(app))
		admin.POST("/social-posts", handlers.HandleSocialPostCreate(app))
		admin.PATCH("/social-posts/{id}", handlers.HandleSocialPostUpdate(app))
		admin.DELETE("/social-posts/{id}", handlers.HandleSocialPostDelete(app))

		return se.Next()
	})

	app.RootCmd.AddCommand(importProductsCmd(app))

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

// importProductsCmd bulk-imports a product catalog from the command
// line, reusing the same validation as the upload endpoint.
func importProductsCmd(app *pocketbase.PocketBase) *cobra.Command {
	return &cobra.Command{
		Use:   "import-products [file.csv|file.xlsx]",
		Short: "Bulk-import products from a CSV or XLSX catalog file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Bootstrap(); err != nil {
				return fmt.Errorf("bootstrap: %w", err)
			}
			collections.Setup(app)

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open file: %w", err)
			}
			defer f.Close()

			result, err := services.ValidateProductFile(f, filepath.Base(args[0]))
			if err != nil {
				return err
			}
			for _, e := range result.Errors {
				fmt.Printf("row %d: %s: %s\n", e.Row, e.Field, e.Message)
			}

			created, updated, err := services.CommitProductImport(app, result)
			if err != nil {
				return err
			}
			fmt.Printf("imported %d new products, updated %d, skipped %d rows with errors\n",
				created, updated, result.ErrorRows)
			return nil
		},
	}
}
