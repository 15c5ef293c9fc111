package authz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var allActions = []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete}

// expected permissions per role, keyed by entity, as a "crud" subset.
// Anything absent must be denied.
var expected = map[Role]map[Entity]string{
	RoleOwner: {
		EntityClient:      "crud",
		EntityEmployee:    "crud",
		EntityService:     "crud",
		EntityAppointment: "crud",
		EntityVehicle:     "crud",
		EntityRepair:      "crud",
		EntityTask:        "crud",
		EntityReport:      "r",
		EntityAudit:       "r",
	},
	RoleManager: {
		EntityClient:      "crud",
		EntityEmployee:    "r",
		EntityService:     "r",
		EntityAppointment: "cr",
		EntityVehicle:     "crud",
		EntityRepair:      "cru",
		EntityTask:        "cru",
		EntityReport:      "r",
	},
	RoleMechanic: {
		EntityService:     "r",
		EntityAppointment: "r",
		EntityVehicle:     "r",
		EntityRepair:      "ru",
		EntityTask:        "ru",
	},
}

func letter(a Action) rune {
	switch a {
	case ActionCreate:
		return 'c'
	case ActionRead:
		return 'r'
	case ActionUpdate:
		return 'u'
	default:
		return 'd'
	}
}

func TestPermitMatrix(t *testing.T) {
	entities := []Entity{
		EntityClient, EntityEmployee, EntityService, EntityAppointment,
		EntityVehicle, EntityRepair, EntityTask, EntityReport, EntityAudit,
	}

	for role, grants := range expected {
		for _, entity := range entities {
			for _, action := range allActions {
				want := false
				for _, ch := range grants[entity] {
					if ch == letter(action) {
						want = true
					}
				}
				got := Permit(role, action, entity)
				require.Equalf(t, want, got,
					"permit(%s, %s, %s)", role, action, entity)
			}
		}
	}
}

func TestPermitOwnerNeverDenied(t *testing.T) {
	for _, entity := range []Entity{
		EntityClient, EntityEmployee, EntityService, EntityAppointment,
	} {
		for _, action := range allActions {
			require.Truef(t, Permit(RoleOwner, action, entity),
				"owner must be allowed %s on %s", action, entity)
		}
	}
}

func TestPermitMechanicWritesDenied(t *testing.T) {
	t.Run("client writes", func(t *testing.T) {
		require.False(t, Permit(RoleMechanic, ActionCreate, EntityClient))
		require.False(t, Permit(RoleMechanic, ActionUpdate, EntityClient))
		require.False(t, Permit(RoleMechanic, ActionDelete, EntityClient))
		require.False(t, Permit(RoleMechanic, ActionRead, EntityClient))
	})

	t.Run("employee writes", func(t *testing.T) {
		require.False(t, Permit(RoleMechanic, ActionCreate, EntityEmployee))
		require.False(t, Permit(RoleMechanic, ActionDelete, EntityEmployee))
	})

	t.Run("service delete", func(t *testing.T) {
		require.False(t, Permit(RoleMechanic, ActionDelete, EntityService))
	})
}

func TestPermitManagerAppointmentLifecycle(t *testing.T) {
	require.True(t, Permit(RoleManager, ActionCreate, EntityAppointment))
	require.True(t, Permit(RoleManager, ActionRead, EntityAppointment))
	require.False(t, Permit(RoleManager, ActionUpdate, EntityAppointment))
	require.False(t, Permit(RoleManager, ActionDelete, EntityAppointment))
}

func TestPermitFailClosed(t *testing.T) {
	require.False(t, Permit(Role("intern"), ActionRead, EntityClient))
	require.False(t, Permit(RoleOwner, Action("export"), EntityClient))
	require.False(t, Permit(RoleOwner, ActionRead, Entity("invoice")))
	require.False(t, Permit("", "", ""))
}

func TestValidRole(t *testing.T) {
	require.True(t, ValidRole("owner"))
	require.True(t, ValidRole("manager"))
	require.True(t, ValidRole("mechanic"))
	require.False(t, ValidRole("admin"))
	require.False(t, ValidRole(""))
}
