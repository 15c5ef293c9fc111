package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tallergestion/workshop-api/internal/authz"
	"github.com/tallergestion/workshop-api/internal/config"
	dbpkg "github.com/tallergestion/workshop-api/internal/db"
	"github.com/tallergestion/workshop-api/internal/logging"
	"github.com/tallergestion/workshop-api/internal/models"
	"github.com/tallergestion/workshop-api/internal/validators"
)

// Aprovisiona cuentas de acceso. No hay registro por la API: toda
// cuenta nace aquí, junto con su ficha de empleado.
//
//	createuser -username jefe -password secreta -email jefe@taller.com -role owner -name "Juan Pérez"
//	createuser -seed
func main() {
	var (
		username = flag.String("username", "", "nombre de usuario (login)")
		password = flag.String("password", "", "contraseña en claro, se guarda el hash")
		email    = flag.String("email", "", "correo, vincula la ficha de empleado")
		role     = flag.String("role", "mechanic", "owner, manager o mechanic")
		name     = flag.String("name", "", "nombre completo")
		phone    = flag.String("phone", "", "teléfono (opcional)")
		seed     = flag.Bool("seed", false, "crea las tres cuentas de demostración")
	)
	flag.Parse()

	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogPretty)
	db := dbpkg.NewDB(cfg, log)

	if *seed {
		seedAccounts(db)
		return
	}

	if *username == "" || *password == "" || *email == "" || *name == "" {
		fmt.Fprintln(os.Stderr, "faltan flags: -username, -password, -email y -name son obligatorios")
		flag.Usage()
		os.Exit(2)
	}

	if err := createAccount(db, account{
		Username: *username,
		Password: *password,
		Email:    *email,
		Role:     *role,
		Name:     *name,
		Phone:    *phone,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("usuario %q creado con rol %s\n", *username, *role)
}

type account struct {
	Username string
	Password string
	Email    string
	Role     string
	Name     string
	Phone    string
}

func createAccount(db *gorm.DB, acc account) error {
	role := strings.ToLower(strings.TrimSpace(acc.Role))
	if !authz.ValidRole(role) {
		return fmt.Errorf("rol desconocido: %q", acc.Role)
	}

	// Chequeo DNS solo informativo: el aprovisionamiento tiene que
	// funcionar sin salida a internet (seeds, CI).
	if !validators.IsEmailDomainValid(acc.Email) {
		fmt.Fprintf(os.Stderr, "aviso: el dominio de %s no resuelve\n", acc.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(acc.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash de contraseña: %w", err)
	}

	username := strings.ToLower(strings.TrimSpace(acc.Username))
	email := strings.ToLower(strings.TrimSpace(acc.Email))

	// Usuario y ficha de empleado en una transacción: la ficha es lo
	// que permite al mecánico tomar reparaciones.
	return db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.User{}).
			Where("username = ? OR email = ?", username, email).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return fmt.Errorf("ya existe un usuario con ese username o correo")
		}

		user := models.User{
			Username:     username,
			Name:         acc.Name,
			Email:        email,
			PasswordHash: string(hash),
			Phone:        acc.Phone,
			Role:         role,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		employee := models.Employee{
			Name:  acc.Name,
			Role:  role,
			Phone: acc.Phone,
			Email: email,
		}
		return tx.Create(&employee).Error
	})
}

// seedAccounts crea las cuentas de demostración de los tres roles.
// Pensado para entornos de desarrollo y pruebas manuales.
func seedAccounts(db *gorm.DB) {
	demo := []account{
		{Username: "jefe", Password: "jefe1234", Email: "jefe@taller.com", Role: "owner", Name: "Jefe de Taller"},
		{Username: "encargado", Password: "encargado1234", Email: "encargado@taller.com", Role: "manager", Name: "Encargado de Taller"},
		{Username: "mecanico", Password: "mecanico1234", Email: "mecanico@taller.com", Role: "mechanic", Name: "Mecánico de Taller"},
	}

	for _, acc := range demo {
		if err := createAccount(db, acc); err != nil {
			fmt.Fprintf(os.Stderr, "seed %s: %v\n", acc.Username, err)
			continue
		}
		fmt.Printf("cuenta %q creada con rol %s\n", acc.Username, acc.Role)
	}
}
