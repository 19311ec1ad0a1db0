// seed genera el script SQL de carga inicial: usuario administrador, sucursal y
// catálogo de tipos de servicio leído de un CSV ("nombre;descripcion").
//
// Uso: go run ./cmd/seed -email admin@lubricentro.com -password secreto -tipos tipos.csv > seed.sql
// La contraseña también puede venir de SEED_ADMIN_PASSWORD.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/lubricentro-api/internal/application/auth"
	"github.com/jhoicas/lubricentro-api/internal/application/dto"
)

func main() {
	name := flag.String("nombre", "Administrador", "nombre del administrador")
	email := flag.String("email", "admin@lubricentro.com", "email del administrador")
	password := flag.String("password", os.Getenv("SEED_ADMIN_PASSWORD"), "contraseña del administrador")
	branch := flag.String("sucursal", "Casa Central", "sucursal inicial (vacío para omitir)")
	typesPath := flag.String("tipos", "", "CSV de tipos de servicio")
	cost := flag.Int("bcrypt-cost", 12, "costo de bcrypt")
	flag.Parse()

	admin := dto.CreateUserRequest{Name: *name, Email: *email, Password: *password, Role: "ADMIN"}
	if err := admin.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Administrador inválido: %v\n", err)
		os.Exit(1)
	}
	hash, err := auth.NewHasher(*cost).Hash(admin.Password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Hash de contraseña: %v\n", err)
		os.Exit(1)
	}

	data := seedData{adminName: admin.Name, adminEmail: admin.Email, adminHash: hash, branch: *branch}
	if *typesPath != "" {
		f, err := os.Open(*typesPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
			os.Exit(1)
		}
		data.serviceTypes, err = readServiceTypes(f)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
			os.Exit(1)
		}
	}

	if err := writeSQL(os.Stdout, data); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Generado: 1 administrador, %d tipos de servicio\n", len(data.serviceTypes))
}
