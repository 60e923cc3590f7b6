package repository

import "github.com/jhoicas/Tienda-api/internal/domain/entity"

// ProfileRepository define el puerto de persistencia para las filas de perfil
// (tabla users del almacén remoto). La resolución de identidad usa GetByEmail;
// el registro inserta la fila con rol fijo "user".
type ProfileRepository interface {
	Create(profile *entity.Profile) error
	GetByID(id string) (*entity.Profile, error)
	GetByEmail(email string) (*entity.Profile, error)
	Update(profile *entity.Profile) error
}
