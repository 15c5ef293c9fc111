package authz

// ======================================================
// ROLES / ACTIONS / ENTITIES
// ======================================================

type Role string

const (
	RoleOwner    Role = "owner"    // Jefe
	RoleManager  Role = "manager"  // Encargado
	RoleMechanic Role = "mechanic" // Mecánico
)

type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type Entity string

const (
	EntityClient      Entity = "client"
	EntityEmployee    Entity = "employee"
	EntityService     Entity = "service"
	EntityAppointment Entity = "appointment"
	EntityVehicle     Entity = "vehicle"
	EntityRepair      Entity = "repair"
	EntityTask        Entity = "task"
	EntityReport      Entity = "report"
	EntityAudit       Entity = "audit"
)

func ValidRole(r string) bool {
	switch Role(r) {
	case RoleOwner, RoleManager, RoleMechanic:
		return true
	}
	return false
}

// ======================================================
// PERMISSION MATRIX
// ======================================================

type rule struct {
	role   Role
	action Action
	entity Entity
}

// La matriz es estática: se construye una sola vez y no se
// reconfigura en runtime. Todo lo que no aparece acá se niega.
var matrix = buildMatrix()

const crud = "crud"

func buildMatrix() map[rule]struct{} {
	grants := []struct {
		role    Role
		entity  Entity
		actions string // subset of "crud"
	}{
		// Jefe: sin restricciones
		{RoleOwner, EntityClient, crud},
		{RoleOwner, EntityEmployee, crud},
		{RoleOwner, EntityService, crud},
		{RoleOwner, EntityAppointment, crud},
		{RoleOwner, EntityVehicle, crud},
		{RoleOwner, EntityRepair, crud},
		{RoleOwner, EntityTask, crud},
		{RoleOwner, EntityReport, "r"},
		{RoleOwner, EntityAudit, "r"},

		// Encargado: clientes y agenda operativa
		{RoleManager, EntityClient, crud},
		{RoleManager, EntityEmployee, "r"},
		{RoleManager, EntityService, "r"},
		{RoleManager, EntityAppointment, "cr"},
		{RoleManager, EntityVehicle, crud},
		{RoleManager, EntityRepair, "cru"},
		{RoleManager, EntityTask, "cru"},
		{RoleManager, EntityReport, "r"},

		// Mecánico: solo lectura de lo relevante al taller,
		// más actualización de sus reparaciones y tareas asignadas
		{RoleMechanic, EntityService, "r"},
		{RoleMechanic, EntityAppointment, "r"},
		{RoleMechanic, EntityVehicle, "r"},
		{RoleMechanic, EntityRepair, "ru"},
		{RoleMechanic, EntityTask, "ru"},
	}

	m := make(map[rule]struct{})
	for _, g := range grants {
		for _, ch := range g.actions {
			var a Action
			switch ch {
			case 'c':
				a = ActionCreate
			case 'r':
				a = ActionRead
			case 'u':
				a = ActionUpdate
			case 'd':
				a = ActionDelete
			default:
				continue
			}
			m[rule{g.role, a, g.entity}] = struct{}{}
		}
	}
	return m
}

// Permit decide si role puede ejecutar action sobre entity.
// Total sobre el dominio finito y cerrada por defecto: cualquier
// tupla desconocida se niega.
func Permit(role Role, action Action, entity Entity) bool {
	_, ok := matrix[rule{role, action, entity}]
	return ok
}
