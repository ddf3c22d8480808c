package service

import "go.uber.org/fx"

func Module() fx.Option {
	return fx.Module("service", fx.Provide(
		NewItem,
		NewHealth,
		NewAccount,
		NewGameData,
		NewLocation,
		NewWaitlist,
		NewConnection,
		NewLocationSave,
	))
}
