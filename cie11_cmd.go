package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/German880/Front-inder/cie11"
)

var errCodigoNoEncontrado = errors.New("código CIE-11 no encontrado")

func cie11Cmd() *cobra.Command {
	var archivo string
	cmd := &cobra.Command{
		Use:   "cie11",
		Short: "Consulta la tabla CIE-11",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if archivo == "" {
				return nil
			}
			t, err := cie11.Cargar(archivo)
			if err != nil {
				return err
			}
			cie11.Usar(t)
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&archivo, "archivo", "", "tabla CIE-11 en YAML (por defecto la embebida)")

	// cie11 codigo
	codigoCmd := &cobra.Command{
		Use:   "codigo <codigo>",
		Short: "Busca la enfermedad de un código",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nombre, ok := cie11.BuscarEnfermedadPorCodigo(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", errCodigoNoEncontrado, args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", cie11.NormalizarCodigo(args[0]), nombre)
			return nil
		},
	}

	// cie11 buscar
	buscarCmd := &cobra.Command{
		Use:   "buscar <texto>",
		Short: "Busca códigos por nombre parcial de la enfermedad",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			texto := strings.Join(args, " ")
			sugerencias := cie11.BuscarCodigosPorNombre(texto)
			if len(sugerencias) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "sin coincidencias")
				return nil
			}
			for _, s := range sugerencias {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", s.Codigo, s.Nombre)
			}
			return nil
		},
	}

	cmd.AddCommand(codigoCmd, buscarCmd)
	return cmd
}
