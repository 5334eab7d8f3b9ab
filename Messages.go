package gxextron

// --------------------------------------------------------------------------
//
//	Gurux Ltd
//
// Filename:        $HeadURL$
//
// Version:         $Revision$,
//
//	$Date$
//	$Author$
//
// # Copyright (c) Gurux Ltd
//
// ---------------------------------------------------------------------------
//
//	DESCRIPTION
//
// This file is a part of Gurux Device Framework.
//
// Gurux Device Framework is Open Source software; you can redistribute it
// and/or modify it under the terms of the GNU General Public License
// as published by the Free Software Foundation; version 2 of the License.
// Gurux Device Framework is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU General Public License for more details.
//
// More information of Gurux products: https://www.gurux.org
//
// This code is licensed under the GNU General Public License v2.
// Full text may be retrieved at http://www.gnu.org/licenses/gpl-2.0.txt
// ---------------------------------------------------------------------------

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//nolint:errcheck
func init() {
	// --- English (default) ---
	message.SetString(language.AmericanEnglish, "msg.connecting_to", "Connecting to %s:%d timeout %d ms")
	message.SetString(language.AmericanEnglish, "msg.connected_to", "Connected and authenticated to %s:%d")
	message.SetString(language.AmericanEnglish, "msg.connect_failed", "connect to %s:%d failed: %v")
	message.SetString(language.AmericanEnglish, "msg.authentication_failed", "authentication to %s:%d failed: %v")
	message.SetString(language.AmericanEnglish, "msg.closing_connection", "Closing connection to %s:%d")
	message.SetString(language.AmericanEnglish, "msg.connection_closed", "Connection closed to %s:%d")
	message.SetString(language.AmericanEnglish, "msg.connection_reset", "Connection to %s:%d was reset: %v")
	message.SetString(language.AmericanEnglish, "msg.reconnecting", "Connection to %s:%d seems to be broken, will attempt to reconnect")
	message.SetString(language.AmericanEnglish, "msg.reconnect_failed", "reconnect to %s:%d failed: %v")
	message.SetString(language.AmericanEnglish, "msg.retrying", "Command %q returned %s, retry %d of %d")

	// --- German (de) ---
	message.SetString(language.German, "msg.connecting_to", "Verbinde mit %s:%d timeout %d ms")
	message.SetString(language.German, "msg.connected_to", "Verbunden und angemeldet bei %s:%d")
	message.SetString(language.German, "msg.connect_failed", "Verbindung zu %s:%d fehlgeschlagen: %v")
	message.SetString(language.German, "msg.authentication_failed", "Anmeldung bei %s:%d fehlgeschlagen: %v")
	message.SetString(language.German, "msg.closing_connection", "Verbindung zu %s:%d wird geschlossen")
	message.SetString(language.German, "msg.connection_closed", "Verbindung zu %s:%d wurde geschlossen")
	message.SetString(language.German, "msg.connection_reset", "Verbindung zu %s:%d wurde zurückgesetzt: %v")
	message.SetString(language.German, "msg.reconnecting", "Verbindung zu %s:%d scheint unterbrochen, neuer Verbindungsversuch")
	message.SetString(language.German, "msg.reconnect_failed", "Neuverbindung zu %s:%d fehlgeschlagen: %v")
	message.SetString(language.German, "msg.retrying", "Befehl %q lieferte %s, Wiederholung %d von %d")

	// --- Finnish (fi) ---
	message.SetString(language.Finnish, "msg.connecting_to", "Yhdistetään kohteeseen %s:%d timeout %d ms")
	message.SetString(language.Finnish, "msg.connected_to", "Yhdistetty ja kirjauduttu kohteeseen %s:%d")
	message.SetString(language.Finnish, "msg.connect_failed", "Yhteyden muodostus kohteeseen %s:%d epäonnistui: %v")
	message.SetString(language.Finnish, "msg.authentication_failed", "Kirjautuminen kohteeseen %s:%d epäonnistui: %v")
	message.SetString(language.Finnish, "msg.closing_connection", "Suljetaan yhteys kohteeseen %s:%d")
	message.SetString(language.Finnish, "msg.connection_closed", "Yhteys suljettu kohteeseen %s:%d")
	message.SetString(language.Finnish, "msg.connection_reset", "Yhteys kohteeseen %s:%d katkesi: %v")
	message.SetString(language.Finnish, "msg.reconnecting", "Yhteys kohteeseen %s:%d näyttää katkenneen, yhdistetään uudelleen")
	message.SetString(language.Finnish, "msg.reconnect_failed", "Uudelleenyhdistäminen kohteeseen %s:%d epäonnistui: %v")
	message.SetString(language.Finnish, "msg.retrying", "Komento %q palautti %s, uusinta %d/%d")

	// --- Swedish (sv) ---
	message.SetString(language.Swedish, "msg.connecting_to", "Ansluter till %s:%d timeout %d ms")
	message.SetString(language.Swedish, "msg.connected_to", "Ansluten och inloggad till %s:%d")
	message.SetString(language.Swedish, "msg.connect_failed", "Anslutning till %s:%d misslyckades: %v")
	message.SetString(language.Swedish, "msg.authentication_failed", "Inloggning till %s:%d misslyckades: %v")
	message.SetString(language.Swedish, "msg.closing_connection", "Stänger anslutning till %s:%d")
	message.SetString(language.Swedish, "msg.connection_closed", "Anslutning stängd till %s:%d")
	message.SetString(language.Swedish, "msg.connection_reset", "Anslutningen till %s:%d återställdes: %v")
	message.SetString(language.Swedish, "msg.reconnecting", "Anslutningen till %s:%d verkar bruten, försöker ansluta igen")
	message.SetString(language.Swedish, "msg.reconnect_failed", "Återanslutning till %s:%d misslyckades: %v")
	message.SetString(language.Swedish, "msg.retrying", "Kommandot %q returnerade %s, försök %d av %d")

	// --- Spanish (es) ---
	message.SetString(language.Spanish, "msg.connecting_to", "Conectando a %s:%d timeout %d ms")
	message.SetString(language.Spanish, "msg.connected_to", "Conectado y autenticado en %s:%d")
	message.SetString(language.Spanish, "msg.connect_failed", "Error al conectar con %s:%d: %v")
	message.SetString(language.Spanish, "msg.authentication_failed", "Error de autenticación en %s:%d: %v")
	message.SetString(language.Spanish, "msg.closing_connection", "Cerrando conexión con %s:%d")
	message.SetString(language.Spanish, "msg.connection_closed", "Conexión cerrada con %s:%d")
	message.SetString(language.Spanish, "msg.connection_reset", "La conexión con %s:%d se restableció: %v")
	message.SetString(language.Spanish, "msg.reconnecting", "La conexión con %s:%d parece rota, se intentará reconectar")
	message.SetString(language.Spanish, "msg.reconnect_failed", "Error al reconectar con %s:%d: %v")
	message.SetString(language.Spanish, "msg.retrying", "El comando %q devolvió %s, reintento %d de %d")

	// --- Estonian (et) ---
	message.SetString(language.Estonian, "msg.connecting_to", "Ühendatakse sihtkohta %s:%d timeout %d ms")
	message.SetString(language.Estonian, "msg.connected_to", "Ühendatud ja sisse logitud sihtkohta %s:%d")
	message.SetString(language.Estonian, "msg.connect_failed", "Ühendamine sihtkohta %s:%d ebaõnnestus: %v")
	message.SetString(language.Estonian, "msg.authentication_failed", "Sisselogimine sihtkohta %s:%d ebaõnnestus: %v")
	message.SetString(language.Estonian, "msg.closing_connection", "Suletakse ühendus sihtkohta %s:%d")
	message.SetString(language.Estonian, "msg.connection_closed", "Ühendus suleti sihtkohta %s:%d")
	message.SetString(language.Estonian, "msg.connection_reset", "Ühendus sihtkohta %s:%d katkes: %v")
	message.SetString(language.Estonian, "msg.reconnecting", "Ühendus sihtkohta %s:%d näib katkenud, proovitakse uuesti ühendada")
	message.SetString(language.Estonian, "msg.reconnect_failed", "Uuesti ühendamine sihtkohta %s:%d ebaõnnestus: %v")
	message.SetString(language.Estonian, "msg.retrying", "Käsk %q tagastas %s, kordus %d/%d")
}
