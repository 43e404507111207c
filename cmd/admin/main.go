package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Panel de administración de la plataforma de subastas",
		Long: `admin expone el gateway HTTP del panel (productos, categorías, pedidos,
usuarios, imágenes) sobre el backend REST de la plataforma, con caché por
colección, cambios optimistas y reconciliación de pedidos por canal push.`,
		SilenceUsage: true,
	}
	cmd.AddCommand(serveCmd(), labelCmd())
	return cmd
}
